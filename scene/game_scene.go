package scene

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/coindash/assets"
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
	"github.com/milk9111/coindash/ecs/entity"
	"github.com/milk9111/coindash/ecs/system"
	"github.com/milk9111/coindash/levels"
	"github.com/milk9111/coindash/prefabs"
	"github.com/milk9111/coindash/storage"
)

// GameOptions wires the gameplay scene to the rest of the program.
type GameOptions struct {
	Director Director
	Debug    bool
	// Store and Progress may be nil; results are then not recorded.
	Store    *storage.Store
	Progress *storage.Progress
	Settings storage.Settings
}

// GameScene plays one level at a time. The current level survives
// restarts because the manager keeps the instance.
type GameScene struct {
	opts GameOptions

	currentLevel int

	world *ecs.World
	music *system.MusicSystem
}

func NewGameScene(opts GameOptions) *GameScene {
	return &GameScene{opts: opts, currentLevel: 1}
}

func (g *GameScene) Key() string { return component.GameSceneKey }

// CurrentLevel is the level the next Create will build.
func (g *GameScene) CurrentLevel() int { return g.currentLevel }

func (g *GameScene) Init(data Data) {
	if data.Level != 0 {
		g.currentLevel = data.Level
	}
}

func (g *GameScene) Preload(loader *assets.Loader) {
	loader.Queue(
		levels.Key(1), levels.Key(2), levels.Key(3),
		assets.KeyTiles, assets.KeyMario, assets.KeyCoin,
		assets.KeyJumpSFX, assets.KeyWinSFX, assets.KeyCollectSFX, assets.KeyGameOverSFX,
		assets.KeyGameBGM,
	)
}

func (g *GameScene) Create() error {
	log.Info("creating level", "level", g.currentLevel)

	game, err := prefabs.LoadGameSpec()
	if err != nil {
		return fmt.Errorf("game scene: %w", err)
	}

	w := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(w, g.currentLevel, game); err != nil {
		return fmt.Errorf("game scene: %w", err)
	}

	var rules system.PickupRules = system.FixedPoints(10)
	if game.PickupScript != "" {
		r, err := prefabs.LoadPickupRules(game.PickupScript)
		if err != nil {
			log.Warn("pickup script unavailable, using fixed points", "script", game.PickupScript, "err", err)
		} else {
			rules = r
		}
	}

	physics := system.NewPhysicsSystem(game.Gravity)
	g.music = system.NewMusicSystem(g.opts.Settings.MusicScale())

	w.AddSystem(system.NewInputSystem())
	w.AddSystem(system.NewPlayerControllerSystem())
	w.AddSystem(physics)
	w.AddSystem(system.NewHazardSystem())
	w.AddSystem(system.NewCollectibleSystem(rules, game.Levels))
	w.AddSystem(system.NewAnimationSystem())
	w.AddSystem(system.NewAudioSystem(g.opts.Settings.SFXScale()))
	w.AddSystem(g.music)
	w.AddSystem(system.NewCameraSystem())
	w.AddSystem(system.NewTileMapRenderSystem())
	w.AddSystem(system.NewRenderSystem())
	if g.opts.Debug {
		w.AddSystem(system.NewPhysicsDebugSystem(physics))
	}

	g.world = w
	return nil
}

func (g *GameScene) Update() error {
	if g.world == nil {
		return nil
	}
	g.world.Update()
	if req, ok := system.TakeSceneRequest(g.world); ok {
		g.handle(req)
	}
	return nil
}

func (g *GameScene) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
}

func (g *GameScene) Shutdown() {
	if g.world != nil && g.music != nil {
		g.music.StopAll(g.world)
	}
	g.world = nil
	g.music = nil
}

// handle records how the level ended and forwards the request to the
// director.
func (g *GameScene) handle(req component.SceneRequest) {
	score := req.Score
	if _, board, ok := ecs.GetFirst(g.world, component.ScoreboardComponent.Kind()); ok {
		score = board.Score
	}

	switch {
	case req.Action == component.SceneRestart:
		g.record(storage.OutcomeLevelComplete, score)
	case req.Scene == component.WinSceneKey:
		g.record(storage.OutcomeWin, score)
	case req.Scene == component.GameOverSceneKey:
		g.record(storage.OutcomeGameOver, score)
	}

	if g.opts.Director == nil {
		return
	}
	if req.Action == component.SceneRestart {
		g.opts.Director.Restart(Data{Level: req.Level})
		return
	}
	g.opts.Director.Start(req.Scene, Data{Level: req.Level, Score: req.Score})
}

func (g *GameScene) record(outcome storage.Outcome, score int) {
	if g.opts.Store != nil {
		if _, err := g.opts.Store.SaveRun(g.currentLevel, score, outcome); err != nil {
			log.Warn("failed to record run", "err", err)
		}
	}
	if better, err := g.opts.Progress.RecordScore(g.currentLevel, score); err != nil {
		log.Warn("failed to save best score", "err", err)
	} else if better {
		log.Info("new best score", "score", score, "level", g.currentLevel)
	}
}
