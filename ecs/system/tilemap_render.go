package system

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
	"github.com/milk9111/coindash/levels"
)

// TileMapRenderSystem draws the live tilemap layers, so removed tiles
// disappear on the next frame.
type TileMapRenderSystem struct{}

func NewTileMapRenderSystem() *TileMapRenderSystem {
	return &TileMapRenderSystem{}
}

func (r *TileMapRenderSystem) Update(*ecs.World) {}

func (r *TileMapRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	_, tm, ok := ecs.GetFirst(w, component.TileMapComponent.Kind())
	if !ok || tm.Map == nil || tm.Tileset == nil || screen == nil {
		return
	}
	camX, camY, zoom := cameraView(w)
	m := tm.Map

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	minX := max(int(camX)/m.TileWidth, 0)
	minY := max(int(camY)/m.TileHeight, 0)
	maxX := min(int(camX+float64(sw)/zoom)/m.TileWidth+1, m.Width-1)
	maxY := min(int(camY+float64(sh)/zoom)/m.TileHeight+1, m.Height-1)

	for _, name := range tm.Layers {
		layer, err := m.Layer(name)
		if err != nil {
			continue
		}
		for ty := minY; ty <= maxY; ty++ {
			for tx := minX; tx <= maxX; tx++ {
				gid := layer.TileAt(tx, ty)
				if gid <= 0 {
					continue
				}
				src, ok := tileSource(m, gid)
				if !ok {
					continue
				}
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(float64(tx*m.TileWidth)-camX, float64(ty*m.TileHeight)-camY)
				op.GeoM.Scale(zoom, zoom)
				screen.DrawImage(tm.Tileset.SubImage(src).(*ebiten.Image), op)
			}
		}
	}
}

func tileSource(m *levels.Map, gid int) (image.Rectangle, bool) {
	ts, ok := m.Tileset(gid)
	if !ok || ts.Columns <= 0 {
		return image.Rectangle{}, false
	}
	tw, th := ts.TileWidth, ts.TileHeight
	if tw <= 0 || th <= 0 {
		tw, th = m.TileWidth, m.TileHeight
	}
	id := gid - ts.FirstGID
	x := (id % ts.Columns) * tw
	y := (id / ts.Columns) * th
	return image.Rect(x, y, x+tw, y+th), true
}
