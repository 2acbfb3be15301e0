package system

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
)

// PickupRules decides how many points a collected tile is worth.
type PickupRules interface {
	Points(tileIndex, level int) int
}

// FixedPoints awards the same score for every pickup.
type FixedPoints int

func (p FixedPoints) Points(int, int) int { return int(p) }

type CollectibleSystem struct {
	rules    PickupRules
	maxLevel int
}

func NewCollectibleSystem(rules PickupRules, maxLevel int) *CollectibleSystem {
	if rules == nil {
		rules = FixedPoints(10)
	}
	if maxLevel <= 0 {
		maxLevel = 3
	}
	return &CollectibleSystem{rules: rules, maxLevel: maxLevel}
}

func (s *CollectibleSystem) Update(w *ecs.World) {
	if w == nil || ScenePending(w) {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	box, ok := bodyAABB(transform, body)
	if !ok {
		return
	}

	_, tm, ok := ecs.GetFirst(w, component.TileMapComponent.Kind())
	if !ok || tm.Map == nil {
		return
	}
	_, coll, ok := ecs.GetFirst(w, component.CollectibleLayerComponent.Kind())
	if !ok {
		return
	}
	_, board, ok := ecs.GetFirst(w, component.ScoreboardComponent.Kind())
	if !ok {
		return
	}
	layer, err := tm.Map.Layer(coll.Layer)
	if err != nil {
		return
	}

	for _, tile := range layer.TilesInRect(box.x, box.y, box.w, box.h, tm.Map.TileWidth, tm.Map.TileHeight) {
		if !coll.Matches(tile.Index) {
			continue
		}
		layer.RemoveTileAt(tile.X, tile.Y)
		s.collect(w, board, tile.Index)
		if ScenePending(w) {
			return
		}
	}
}

func (s *CollectibleSystem) collect(w *ecs.World, board *component.Scoreboard, tileIndex int) {
	board.Score += s.rules.Points(tileIndex, board.Level)
	board.Collected++
	SetHUD(w, board)
	PlaySound(w, "collect")

	if board.Collected != board.Total {
		return
	}

	StopMusicNow(w)
	PlaySound(w, "win")
	log.Info("level complete", "level", board.Level, "score", board.Score)

	board.Level++
	if board.Level > s.maxLevel {
		RequestScene(w, &component.SceneRequest{Action: component.SceneStart, Scene: component.WinSceneKey})
		return
	}
	RequestScene(w, &component.SceneRequest{Action: component.SceneRestart, Level: board.Level})
}

// SetHUD refreshes the score and coin counter texts.
func SetHUD(w *ecs.World, board *component.Scoreboard) {
	ecs.ForEach2(w, component.ScoreTextTagComponent.Kind(), component.TextComponent.Kind(), func(_ ecs.Entity, _ *component.ScoreTextTag, t *component.Text) {
		t.Value = fmt.Sprintf("Score: %d", board.Score)
	})
	ecs.ForEach2(w, component.CoinTextTagComponent.Kind(), component.TextComponent.Kind(), func(_ ecs.Entity, _ *component.CoinTextTag, t *component.Text) {
		t.Value = fmt.Sprintf("x %d", board.Collected)
	})
}
