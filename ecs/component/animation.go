package component

import (
	"github.com/hajimehoshi/ebiten/v2"
)

type AnimationDef struct {
	Name       string
	Row        int
	ColStart   int // start column (frame 0)
	FrameCount int
	FrameW     int
	FrameH     int
	FPS        float64
	Loop       bool
}

type Animation struct {
	Sheet      *ebiten.Image
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

// Play switches to the named clip. With ignoreIfPlaying set, asking for the
// clip that is already running leaves its frame position alone.
func (a *Animation) Play(name string, ignoreIfPlaying bool) {
	if a == nil {
		return
	}
	if ignoreIfPlaying && a.Current == name && a.Playing {
		return
	}
	a.Current = name
	a.Frame = 0
	a.FrameTimer = 0
	a.Playing = true
}

var AnimationComponent = NewComponent[Animation]()
