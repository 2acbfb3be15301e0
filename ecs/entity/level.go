package entity

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/coindash/assets"
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
	"github.com/milk9111/coindash/ecs/system"
	"github.com/milk9111/coindash/levels"
	"github.com/milk9111/coindash/prefabs"
)

// LoadLevelToWorld populates a fresh world with everything a level needs:
// the tilemap and its colliders, the scoreboard, music, the player, the HUD
// and the camera.
func LoadLevelToWorld(w *ecs.World, level int, game *prefabs.GameSpec) error {
	if w == nil {
		return fmt.Errorf("level: world is nil")
	}
	if game == nil {
		return fmt.Errorf("level: game spec is nil")
	}

	key := levels.Key(level)
	log.Info("loading level", "level", level, "map", key)

	m, err := loadTileMap(key)
	if err != nil {
		return fmt.Errorf("level %d: %w", level, err)
	}

	solid, err := m.Layer(game.SolidLayer)
	if err != nil {
		return fmt.Errorf("level %d: %w", level, err)
	}
	hazard, err := m.Layer(game.HazardLayer)
	if err != nil {
		return fmt.Errorf("level %d: %w", level, err)
	}
	coins, err := m.Layer(game.CollectibleLayer)
	if err != nil {
		return fmt.Errorf("level %d: %w", level, err)
	}

	tileset, err := loadImage(assets.KeyTiles)
	if err != nil {
		return fmt.Errorf("level %d: tileset: %w", level, err)
	}

	mapEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, mapEntity, component.TileMapComponent.Kind(), &component.TileMap{
		Map:     m,
		Tileset: tileset,
		Layers:  []string{game.SolidLayer, game.CollectibleLayer, game.HazardLayer},
	}); err != nil {
		return fmt.Errorf("level %d: add tilemap: %w", level, err)
	}
	if err := ecs.Add(w, mapEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(m.WidthInPixels()),
		Height: float64(m.HeightInPixels()),
	}); err != nil {
		return fmt.Errorf("level %d: add bounds: %w", level, err)
	}

	if err := addMergedTileColliders(w, m.CollisionMask(solid), m.Width, m.Height, float64(m.TileWidth), float64(m.TileHeight), false); err != nil {
		return fmt.Errorf("level %d: platform colliders: %w", level, err)
	}
	if err := addMergedTileColliders(w, m.CollisionMask(hazard), m.Width, m.Height, float64(m.TileWidth), float64(m.TileHeight), true); err != nil {
		return fmt.Errorf("level %d: hazard colliders: %w", level, err)
	}

	total := len(coins.FilterTiles(levels.IndexIn(game.CollectibleIndices...)))
	if err := ecs.Add(w, mapEntity, component.CollectibleLayerComponent.Kind(), &component.CollectibleLayer{
		Layer:   game.CollectibleLayer,
		Indices: append([]int(nil), game.CollectibleIndices...),
	}); err != nil {
		return fmt.Errorf("level %d: add collectible layer: %w", level, err)
	}
	if err := ecs.Add(w, mapEntity, component.ScoreboardComponent.Kind(), &component.Scoreboard{
		Level: level,
		Total: total,
	}); err != nil {
		return fmt.Errorf("level %d: add scoreboard: %w", level, err)
	}

	if _, err := NewMusicPlayer(w); err != nil {
		return fmt.Errorf("level %d: %w", level, err)
	}
	if game.Music.Track != "" {
		system.RequestMusicWithOptions(w, &component.MusicRequest{
			Track:  game.Music.Track,
			Volume: game.Music.Volume,
			Loop:   game.Music.Loop,
		})
	}

	if _, err := NewPlayer(w); err != nil {
		return fmt.Errorf("level %d: %w", level, err)
	}
	if err := NewHUD(w, game.HUD); err != nil {
		return fmt.Errorf("level %d: %w", level, err)
	}
	if _, err := NewCamera(w, float64(game.Screen.Width), float64(game.Screen.Height)); err != nil {
		return fmt.Errorf("level %d: %w", level, err)
	}

	log.Debug("level ready", "level", level, "collectibles", total)
	return nil
}

// addMergedTileColliders turns the set cells of mask into as few static
// rectangles as it can, growing each run right and then down.
func addMergedTileColliders(w *ecs.World, mask []bool, width, height int, tileW, tileH float64, hazard bool) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	solid := func(idx int) bool { return idx < len(mask) && mask[idx] && !visited[idx] }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !solid(index(x, y)) {
				continue
			}

			runW := 0
			for x2 := x; x2 < width && solid(index(x2, y)); x2++ {
				runW++
			}

			runH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+runW; x2++ {
					if !solid(index(x2, y2)) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				runH++
			}

			for yy := y; yy < y+runH; yy++ {
				for xx := x; xx < x+runW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			e := ecs.CreateEntity(w)
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
				X:      float64(x) * tileW,
				Y:      float64(y) * tileH,
				ScaleX: 1,
				ScaleY: 1,
			}); err != nil {
				return err
			}
			if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:        float64(runW) * tileW,
				Height:       float64(runH) * tileH,
				Static:       true,
				AlignTopLeft: true,
			}); err != nil {
				return err
			}
			if hazard {
				if err := ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{}); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
