package system

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/coindash/assets"
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
)

const (
	defaultMusicVolume     = 1.0
	defaultMusicFadeFrames = 30
)

type MusicSystem struct {
	volumeScale float64
	load        func(track string) (*audio.Player, error)
}

func NewMusicSystem(volumeScale float64) *MusicSystem {
	return &MusicSystem{volumeScale: volumeScale, load: assets.AudioPlayer}
}

func RequestMusic(w *ecs.World, track string, volume float64) {
	RequestMusicWithOptions(w, &component.MusicRequest{Track: track, Volume: volume, Loop: true, FadeOutFrames: defaultMusicFadeFrames})
}

func RequestMusicWithOptions(w *ecs.World, req *component.MusicRequest) {
	if w == nil || req == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.MusicRequestComponent.Kind(), req)
}

func StopMusic(w *ecs.World) {
	RequestMusicWithOptions(w, &component.MusicRequest{FadeOutFrames: defaultMusicFadeFrames})
}

// StopMusicNow silences the current track on this frame.
func StopMusicNow(w *ecs.World) {
	RequestMusicWithOptions(w, &component.MusicRequest{Immediate: true})
}

func (m *MusicSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	latest, requestEntities := m.consumeLatestRequest(w)
	for _, ent := range requestEntities {
		ecs.DestroyEntity(w, ent)
	}

	_, player, ok := ecs.GetFirst(w, component.MusicPlayerComponent.Kind())
	if !ok {
		return
	}
	if player.Players == nil {
		player.Players = make(map[string]*audio.Player)
	}
	if player.TrackVolumes == nil {
		player.TrackVolumes = make(map[string]float64)
	}

	if latest != nil {
		m.applyRequest(player, *latest)
	}

	if player.PendingActive {
		m.updateTransition(player)
		return
	}

	current := m.currentPlayer(player)
	if current != nil && !current.IsPlaying() && player.CurrentLoop {
		_ = current.Rewind()
		current.SetVolume(m.scaled(player.CurrentVolume))
		current.Play()
	}
}

// StopAll pauses whatever the music player on w is playing.
func (m *MusicSystem) StopAll(w *ecs.World) {
	_, player, ok := ecs.GetFirst(w, component.MusicPlayerComponent.Kind())
	if !ok {
		return
	}
	m.stopNow(player)
}

func (m *MusicSystem) consumeLatestRequest(w *ecs.World) (*component.MusicRequest, []ecs.Entity) {
	var latest *component.MusicRequest
	var requestEntities []ecs.Entity

	ecs.ForEach(w, component.MusicRequestComponent.Kind(), func(ent ecs.Entity, req *component.MusicRequest) {
		requestEntities = append(requestEntities, ent)
		c := *req
		latest = &c
	})

	return latest, requestEntities
}

func (m *MusicSystem) applyRequest(player *component.MusicPlayer, req component.MusicRequest) {
	track := strings.TrimSpace(req.Track)

	if req.Immediate {
		m.stopNow(player)
		if track == "" {
			return
		}
	}

	volume := req.Volume
	if volume <= 0 {
		if v, ok := player.TrackVolumes[track]; ok && v > 0 {
			volume = v
		} else {
			volume = defaultMusicVolume
		}
	}
	volume = min(volume, 1)
	fadeFrames := req.FadeOutFrames
	if fadeFrames <= 0 {
		fadeFrames = defaultMusicFadeFrames
	}

	current := m.currentPlayer(player)
	if track == "" {
		if current == nil {
			player.PendingActive = false
			player.CurrentTrack = ""
			player.CurrentVolume = 0
			player.CurrentLoop = false
			return
		}
		player.PendingTrack = ""
		player.PendingVolume = 0
		player.PendingLoop = false
		player.PendingActive = true
		player.FadeStep = fadeStep(player.CurrentVolume, fadeFrames)
		return
	}

	if !player.PendingActive && player.CurrentTrack == track && current != nil {
		player.CurrentVolume = volume
		current.SetVolume(m.scaled(volume))
		if !current.IsPlaying() {
			_ = current.Rewind()
			current.Play()
		}
		return
	}

	player.PendingTrack = track
	player.PendingVolume = volume
	player.PendingLoop = req.Loop
	player.PendingActive = true
	if current == nil {
		m.switchToPending(player)
		return
	}
	player.FadeStep = fadeStep(player.CurrentVolume, fadeFrames)
}

func fadeStep(volume float64, frames int) float64 {
	step := volume / float64(frames)
	if step <= 0 {
		return 1
	}
	return step
}

func (m *MusicSystem) stopNow(player *component.MusicPlayer) {
	if current := m.currentPlayer(player); current != nil {
		current.Pause()
		_ = current.Rewind()
	}
	player.CurrentTrack = ""
	player.CurrentVolume = 0
	player.CurrentLoop = false
	player.PendingTrack = ""
	player.PendingVolume = 0
	player.PendingLoop = false
	player.PendingActive = false
	player.FadeStep = 0
}

func (m *MusicSystem) updateTransition(player *component.MusicPlayer) {
	current := m.currentPlayer(player)
	if current == nil {
		m.switchToPending(player)
		return
	}

	player.CurrentVolume -= player.FadeStep
	if player.CurrentVolume > 0 {
		current.SetVolume(m.scaled(player.CurrentVolume))
		return
	}

	current.Pause()
	_ = current.Rewind()
	player.CurrentTrack = ""
	player.CurrentVolume = 0
	player.CurrentLoop = false
	m.switchToPending(player)
}

func (m *MusicSystem) switchToPending(player *component.MusicPlayer) {
	if !player.PendingActive {
		return
	}

	track := strings.TrimSpace(player.PendingTrack)
	volume := player.PendingVolume
	loop := player.PendingLoop

	player.PendingTrack = ""
	player.PendingVolume = 0
	player.PendingLoop = false
	player.PendingActive = false
	player.FadeStep = 0

	player.CurrentTrack = ""
	player.CurrentVolume = 0
	player.CurrentLoop = false
	if track == "" {
		return
	}

	audioPlayer, err := m.playerForTrack(player, track)
	if err != nil {
		log.Warn("music: load track", "track", track, "err", err)
		return
	}

	player.CurrentTrack = track
	player.CurrentVolume = volume
	player.CurrentLoop = loop
	if audioPlayer == nil {
		return
	}
	_ = audioPlayer.Rewind()
	audioPlayer.SetVolume(m.scaled(volume))
	audioPlayer.Play()
}

func (m *MusicSystem) scaled(v float64) float64 {
	return v * m.volumeScale
}

func (m *MusicSystem) currentPlayer(player *component.MusicPlayer) *audio.Player {
	if player.CurrentTrack == "" || player.Players == nil {
		return nil
	}
	return player.Players[player.CurrentTrack]
}

func (m *MusicSystem) playerForTrack(player *component.MusicPlayer, track string) (*audio.Player, error) {
	if existing, ok := player.Players[track]; ok {
		return existing, nil
	}
	if m.load == nil {
		return nil, fmt.Errorf("no loader for %q", track)
	}
	audioPlayer, err := m.load(track)
	if err != nil {
		return nil, err
	}
	player.Players[track] = audioPlayer
	return audioPlayer, nil
}
