package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
)

// HazardSystem ends the run on the first player contact with lava. It must
// run before CollectibleSystem so a death on the final pickup frame wins.
type HazardSystem struct{}

func NewHazardSystem() *HazardSystem { return &HazardSystem{} }

func (h *HazardSystem) Update(w *ecs.World) {
	if w == nil || ScenePending(w) {
		return
	}

	hit := false
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.PlayerCollisionComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, pc *component.PlayerCollision) {
		if pc.HazardContact {
			hit = true
		}
	})
	if !hit {
		return
	}

	score := 0
	if _, board, ok := ecs.GetFirst(w, component.ScoreboardComponent.Kind()); ok {
		score = board.Score
	}

	PlaySound(w, "gameover")
	StopMusicNow(w)
	log.Info("player hit hazard", "score", score)
	RequestScene(w, &component.SceneRequest{
		Action: component.SceneStart,
		Scene:  component.GameOverSceneKey,
		Score:  score,
	})
}
