package main

import (
	"github.com/ebitenui/ebitenui"

	"github.com/milk9111/coindash/scene"
)

// NewPauseUI builds the Esc menu with Resume and Quit buttons.
func NewPauseUI(g *Game) *ebitenui.UI {
	return scene.NewMenu("Paused", nil, []scene.MenuButton{
		{Label: "Resume", OnClick: func() { g.paused = false }},
		{Label: "Quit", OnClick: func() { g.quit = true }},
	}, g.width/2, g.height/2)
}
