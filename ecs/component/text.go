package component

import "image/color"

// Text is a single line of HUD text drawn at the entity's transform.
type Text struct {
	Value string
	Size  float64
	Color color.Color
}

var TextComponent = NewComponent[Text]()
