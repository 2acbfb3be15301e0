package levels

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMissingLayer = errors.New("levels: missing layer")

// Tiled stores flip flags in the top bits of each gid.
const gidFlagMask = 0xE0000000

// Map is a Tiled orthogonal tilemap in its JSON export format.
type Map struct {
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	TileWidth  int        `json:"tilewidth"`
	TileHeight int        `json:"tileheight"`
	Layers     []*Layer   `json:"layers"`
	Tilesets   []*Tileset `json:"tilesets"`
}

// Layer is one named grid of tile indices, row-major. Index 0 is empty.
type Layer struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Visible bool    `json:"visible"`
	Opacity float64 `json:"opacity"`
	Data    []int   `json:"data"`
}

type Tileset struct {
	FirstGID   int       `json:"firstgid"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	TileWidth  int       `json:"tilewidth"`
	TileHeight int       `json:"tileheight"`
	TileCount  int       `json:"tilecount"`
	Columns    int       `json:"columns"`
	Tiles      []TileDef `json:"tiles"`
}

type TileDef struct {
	ID         int        `json:"id"`
	Properties []Property `json:"properties"`
}

type Property struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Tile is a single occupied cell of a layer.
type Tile struct {
	Index int
	X     int
	Y     int
}

// Parse decodes a Tiled JSON map and validates its tile layers.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal tilemap: %w", err)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("invalid tilemap dimensions: %dx%d", m.Width, m.Height)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile size: %dx%d", m.TileWidth, m.TileHeight)
	}
	for _, l := range m.Layers {
		if l.Type != "" && l.Type != "tilelayer" {
			continue
		}
		if l.Width == 0 && l.Height == 0 {
			l.Width, l.Height = m.Width, m.Height
		}
		if len(l.Data) != l.Width*l.Height {
			return nil, fmt.Errorf("layer %q: %d tiles for %dx%d grid", l.Name, len(l.Data), l.Width, l.Height)
		}
		for i, gid := range l.Data {
			l.Data[i] = gid &^ gidFlagMask
		}
	}
	return &m, nil
}

// Clone returns a deep copy so a level can mutate its layers without
// touching the cached document.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := *m
	out.Layers = make([]*Layer, len(m.Layers))
	for i, l := range m.Layers {
		cp := *l
		cp.Data = append([]int(nil), l.Data...)
		out.Layers[i] = &cp
	}
	out.Tilesets = append([]*Tileset(nil), m.Tilesets...)
	return &out
}

func (m *Map) WidthInPixels() int {
	return m.Width * m.TileWidth
}

func (m *Map) HeightInPixels() int {
	return m.Height * m.TileHeight
}

// Layer returns the tile layer called name.
func (m *Map) Layer(name string) (*Layer, error) {
	for _, l := range m.Layers {
		if l.Name == name && (l.Type == "" || l.Type == "tilelayer") {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrMissingLayer, name)
}

// Tileset returns the tileset that owns gid.
func (m *Map) Tileset(gid int) (*Tileset, bool) {
	var found *Tileset
	for _, ts := range m.Tilesets {
		if ts.FirstGID <= gid && (found == nil || ts.FirstGID > found.FirstGID) {
			found = ts
		}
	}
	return found, found != nil
}

// Property looks up a custom tile property by gid.
func (m *Map) Property(gid int, name string) (any, bool) {
	ts, ok := m.Tileset(gid)
	if !ok {
		return nil, false
	}
	id := gid - ts.FirstGID
	for _, def := range ts.Tiles {
		if def.ID != id {
			continue
		}
		for _, p := range def.Properties {
			if p.Name == name {
				return p.Value, true
			}
		}
	}
	return nil, false
}

// Collides reports whether gid carries collides: true.
func (m *Map) Collides(gid int) bool {
	if gid <= 0 {
		return false
	}
	v, ok := m.Property(gid, "collides")
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// CollisionMask returns, per cell, whether the layer tile collides.
func (m *Map) CollisionMask(l *Layer) []bool {
	mask := make([]bool, len(l.Data))
	for i, gid := range l.Data {
		mask[i] = m.Collides(gid)
	}
	return mask
}

func (l *Layer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.Width && y < l.Height
}

// TileAt returns the tile index at (x, y) in tile units, 0 when empty or
// out of bounds.
func (l *Layer) TileAt(x, y int) int {
	if !l.inBounds(x, y) {
		return 0
	}
	return l.Data[y*l.Width+x]
}

// RemoveTileAt empties the cell and returns the index it held.
func (l *Layer) RemoveTileAt(x, y int) int {
	if !l.inBounds(x, y) {
		return 0
	}
	idx := y*l.Width + x
	old := l.Data[idx]
	l.Data[idx] = 0
	return old
}

// FilterTiles returns the occupied cells accepted by keep, row by row.
func (l *Layer) FilterTiles(keep func(Tile) bool) []Tile {
	var out []Tile
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			idx := l.Data[y*l.Width+x]
			if idx <= 0 {
				continue
			}
			t := Tile{Index: idx, X: x, Y: y}
			if keep == nil || keep(t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// TilesInRect returns the occupied cells overlapping the pixel rectangle.
func (l *Layer) TilesInRect(x, y, w, h float64, tileW, tileH int) []Tile {
	if w <= 0 || h <= 0 || tileW <= 0 || tileH <= 0 {
		return nil
	}
	minX := floorDiv(x, tileW)
	minY := floorDiv(y, tileH)
	maxX := floorDiv(x+w-1e-9, tileW)
	maxY := floorDiv(y+h-1e-9, tileH)

	var out []Tile
	for ty := minY; ty <= maxY; ty++ {
		for tx := minX; tx <= maxX; tx++ {
			idx := l.TileAt(tx, ty)
			if idx <= 0 {
				continue
			}
			out = append(out, Tile{Index: idx, X: tx, Y: ty})
		}
	}
	return out
}

// IndexIn builds a FilterTiles predicate matching any of indices.
func IndexIn(indices ...int) func(Tile) bool {
	return func(t Tile) bool {
		for _, i := range indices {
			if t.Index == i {
				return true
			}
		}
		return false
	}
}

func floorDiv(v float64, size int) int {
	q := v / float64(size)
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}
