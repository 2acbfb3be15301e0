package component

// CollectibleLayer names the tile layer whose cells are picked up on
// overlap, and the tile indices that count as collectibles.
type CollectibleLayer struct {
	Layer   string
	Indices []int
}

// Matches reports whether idx is one of the collectible indices.
func (c *CollectibleLayer) Matches(idx int) bool {
	if c == nil {
		return false
	}
	for _, i := range c.Indices {
		if i == idx {
			return true
		}
	}
	return false
}

var CollectibleLayerComponent = NewComponent[CollectibleLayer]()
