package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a drawable image. FacingLeft mirrors the image horizontally,
// the same as flipX on a sprite game object.
type Sprite struct {
	Image      *ebiten.Image
	Source     image.Rectangle
	UseSource  bool
	OriginX    float64
	OriginY    float64
	FacingLeft bool
}

var SpriteComponent = NewComponent[Sprite]()
