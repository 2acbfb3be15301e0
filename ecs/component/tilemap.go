package component

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/coindash/levels"
)

// TileMap is the live, mutable copy of the level's tilemap. Layers lists
// the tile layers to draw, back to front.
type TileMap struct {
	Map     *levels.Map
	Tileset *ebiten.Image
	Layers  []string
}

var TileMapComponent = NewComponent[TileMap]()
