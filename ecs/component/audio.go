package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds the named one-shot clips of an entity. Systems raise Play or
// Stop flags; the audio system acts on them once per frame.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// Request flags the named clip for playback and reports whether the clip
// exists.
func (a *Audio) Request(name string) bool {
	if a == nil {
		return false
	}
	for i, n := range a.Names {
		if n != name {
			continue
		}
		if i < len(a.Play) {
			a.Play[i] = true
			return true
		}
		return false
	}
	return false
}

var AudioComponent = NewComponent[Audio]()
