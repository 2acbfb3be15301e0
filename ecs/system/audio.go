package system

import (
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
)

// AudioSystem plays and stops the clips flagged on Audio components. A
// clip that is already playing restarts from the beginning.
type AudioSystem struct {
	sfxVolume float64
}

func NewAudioSystem(sfxVolume float64) *AudioSystem {
	return &AudioSystem{sfxVolume: sfxVolume}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		for i := range audioComp.Play {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false
			if i >= len(audioComp.Players) || audioComp.Players[i] == nil {
				continue
			}
			player := audioComp.Players[i]
			volume := 1.0
			if i < len(audioComp.Volume) {
				volume = audioComp.Volume[i]
			}
			player.SetVolume(volume * a.sfxVolume)
			_ = player.Rewind()
			player.Play()
		}

		for i := range audioComp.Stop {
			if !audioComp.Stop[i] {
				continue
			}
			audioComp.Stop[i] = false
			if i < len(audioComp.Players) && audioComp.Players[i] != nil {
				audioComp.Players[i].Pause()
			}
		}
	})
}
