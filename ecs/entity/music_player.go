package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
)

// NewMusicPlayer creates the entity that owns background music state.
// Tracks are loaded on first request.
func NewMusicPlayer(w *ecs.World) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("music player: world is nil")
	}
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.MusicPlayerComponent.Kind(), &component.MusicPlayer{
		Players:      make(map[string]*audio.Player),
		TrackVolumes: make(map[string]float64),
	}); err != nil {
		return 0, fmt.Errorf("music player: add component: %w", err)
	}
	return ent, nil
}
