package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/coindash/ecs/component"
	"github.com/milk9111/coindash/prefabs"
	"github.com/milk9111/coindash/scene"
	"github.com/milk9111/coindash/storage"
)

var (
	flagLevel int
	flagWatch bool
	flagMute  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game window.

Examples:
  coindash play
  coindash play --level 2
  coindash play --watch --debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start on")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload prefabs/ from disk on every level load and log edits")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Silence music and sound effects")
}

func runPlay(cmd *cobra.Command, args []string) error {
	game, err := prefabs.LoadGameSpec()
	if err != nil {
		return err
	}
	if flagLevel < 1 || flagLevel > game.Levels {
		return fmt.Errorf("level %d out of range 1..%d", flagLevel, game.Levels)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("run history disabled", "err", err)
		store = nil
	}
	defer store.Close()

	progress := storage.OpenProgress()
	settings := progress.Settings()
	if flagMute {
		settings.Mute = true
	}

	if flagWatch {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		if err := watchPrefabs(ctx); err != nil {
			log.Warn("prefab watch disabled", "err", err)
		}
	}

	manager := scene.NewManager()
	manager.Add(scene.NewGameScene(scene.GameOptions{
		Director: manager,
		Debug:    flagDebug,
		Store:    store,
		Progress: progress,
		Settings: settings,
	}))
	manager.Add(scene.NewWinScene(manager))
	manager.Add(scene.NewGameOverScene(manager, progress))
	manager.Start(component.GameSceneKey, scene.Data{Level: flagLevel})

	ebiten.SetWindowSize(game.Screen.Width, game.Screen.Height)
	ebiten.SetWindowTitle(game.Title)

	g := NewGame(manager, game.Screen.Width, game.Screen.Height)
	defer manager.Shutdown()
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

func watchPrefabs(ctx context.Context) error {
	w, err := prefabs.NewWatcher()
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		w.Close()
	}()
	go w.Forward(ctx, func(path string) {
		log.Info("prefab changed, applies on next level load", "path", path)
	}, func(err error) {
		log.Warn("prefab watch error", "err", err)
	})
	log.Info("watching prefabs", "dir", prefabs.Dir)
	return nil
}
