package component

// Transform places an entity in world space, or in screen space when the
// entity also carries ScreenSpace.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
