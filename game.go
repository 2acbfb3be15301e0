package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/coindash/scene"
)

// Game hosts the scene manager inside the ebiten loop.
type Game struct {
	manager *scene.Manager
	width   int
	height  int

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(manager *scene.Manager, width, height int) *Game {
	g := &Game{manager: manager, width: width, height: height}
	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	return g.manager.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.manager.Draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
