package scene

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/coindash/assets"
	"github.com/milk9111/coindash/ecs/component"
	"github.com/milk9111/coindash/storage"
	"golang.design/x/clipboard"
)

const (
	menuWidth  = 320
	menuHeight = 200
)

// WinScene is shown after the last level.
type WinScene struct {
	director Director
	ui       *ebitenui.UI
	quit     bool
}

func NewWinScene(director Director) *WinScene {
	return &WinScene{director: director}
}

func (s *WinScene) Key() string               { return component.WinSceneKey }
func (s *WinScene) Init(Data)                 { s.quit = false }
func (s *WinScene) Preload(*assets.Loader)    {}
func (s *WinScene) Draw(screen *ebiten.Image) { s.ui.Draw(screen) }
func (s *WinScene) Shutdown()                 { s.ui = nil }

func (s *WinScene) Create() error {
	s.ui = NewMenu("You Win!", []string{"All three levels cleared."}, []MenuButton{
		{Label: "Play again", OnClick: s.playAgain},
		{Label: "Quit", OnClick: func() { s.quit = true }},
	}, menuWidth, menuHeight)
	return nil
}

func (s *WinScene) playAgain() {
	s.director.Start(component.GameSceneKey, Data{Level: 1})
}

func (s *WinScene) Update() error {
	if s.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.playAgain()
	}
	s.ui.Update()
	return nil
}

// GameOverScene shows the final score and offers a retry of the same level.
type GameOverScene struct {
	director Director
	progress *storage.Progress
	ui       *ebitenui.UI

	score int
	best  int
}

func NewGameOverScene(director Director, progress *storage.Progress) *GameOverScene {
	return &GameOverScene{director: director, progress: progress}
}

func (s *GameOverScene) Key() string               { return component.GameOverSceneKey }
func (s *GameOverScene) Preload(*assets.Loader)    {}
func (s *GameOverScene) Draw(screen *ebiten.Image) { s.ui.Draw(screen) }
func (s *GameOverScene) Shutdown()                 { s.ui = nil }

func (s *GameOverScene) Init(data Data) {
	s.score = data.Score
	s.best = s.progress.BestScore()
}

// Lines returns the info text shown under the title.
func (s *GameOverScene) Lines() []string {
	return []string{
		fmt.Sprintf("Score: %d", s.score),
		fmt.Sprintf("Best: %d", max(s.best, s.score)),
	}
}

func (s *GameOverScene) Create() error {
	s.ui = NewMenu("Game Over", s.Lines(), []MenuButton{
		{Label: "Retry", OnClick: s.retry},
		{Label: "Copy score", OnClick: s.copyScore},
	}, menuWidth, menuHeight)
	return nil
}

func (s *GameOverScene) retry() {
	s.director.Start(component.GameSceneKey, Data{})
}

func (s *GameOverScene) copyScore() {
	if err := initClipboard(); err != nil {
		log.Warn("clipboard unavailable", "err", err)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(fmt.Sprintf("Score: %d", s.score)))
}

func (s *GameOverScene) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.retry()
	}
	s.ui.Update()
	return nil
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

func initClipboard() error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	return clipboardErr
}
