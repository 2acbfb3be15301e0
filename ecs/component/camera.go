package component

type Camera struct {
	TargetName string
	Zoom       float64
	// Bounded clamps the view to LevelBounds.
	Bounded bool
	// ViewW and ViewH are the logical screen size the camera centers within.
	ViewW float64
	ViewH float64
}

var CameraComponent = NewComponent[Camera]()
