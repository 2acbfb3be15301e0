package storage

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application directory.
const AppName = "coindash"

const (
	progressObject   = "progress"
	settingsProperty = "settings"
	bestProperty     = "best"
)

// Settings are the player's audio preferences.
type Settings struct {
	MusicVolume float64 `yaml:"music_volume"`
	SFXVolume   float64 `yaml:"sfx_volume"`
	Mute        bool    `yaml:"mute"`
}

// DefaultSettings returns full volume, unmuted.
func DefaultSettings() Settings {
	return Settings{MusicVolume: 1, SFXVolume: 1}
}

// MusicScale is the multiplier applied to music volumes.
func (s Settings) MusicScale() float64 {
	if s.Mute {
		return 0
	}
	return clampVolume(s.MusicVolume)
}

// SFXScale is the multiplier applied to sound effect volumes.
func (s Settings) SFXScale() float64 {
	if s.Mute {
		return 0
	}
	return clampVolume(s.SFXVolume)
}

type bestRecord struct {
	Score int `yaml:"score"`
	Level int `yaml:"level"`
}

// Progress keeps settings and the best score. A nil manager runs in memory only.
type Progress struct {
	mu       sync.Mutex
	manager  *gdata.Manager
	settings Settings
	best     bestRecord
}

// OpenProgress opens the gdata store for the game. Failures degrade to memory-only progress.
func OpenProgress() *Progress {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Warn("progress store unavailable, settings will not persist", "err", err)
		m = nil
	}
	return NewProgress(m)
}

// NewProgress loads settings and best score from m, which may be nil.
func NewProgress(m *gdata.Manager) *Progress {
	p := &Progress{manager: m, settings: DefaultSettings()}
	if err := p.load(settingsProperty, &p.settings); err != nil {
		log.Warn("failed to load settings, using defaults", "err", err)
		p.settings = DefaultSettings()
	}
	if err := p.load(bestProperty, &p.best); err != nil {
		log.Warn("failed to load best score", "err", err)
		p.best = bestRecord{}
	}
	return p
}

func (p *Progress) load(prop string, dst any) error {
	if p.manager == nil || !p.manager.ObjectPropExists(progressObject, prop) {
		return nil
	}
	data, err := p.manager.LoadObjectProp(progressObject, prop)
	if err != nil {
		return fmt.Errorf("storage: load %s: %w", prop, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("storage: decode %s: %w", prop, err)
	}
	return nil
}

func (p *Progress) save(prop string, v any) error {
	if p.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", prop, err)
	}
	if err := p.manager.SaveObjectProp(progressObject, prop, data); err != nil {
		return fmt.Errorf("storage: save %s: %w", prop, err)
	}
	return nil
}

// Persistent reports whether progress survives a restart.
func (p *Progress) Persistent() bool {
	return p != nil && p.manager != nil
}

// Settings returns a copy of the current settings.
func (p *Progress) Settings() Settings {
	if p == nil {
		return DefaultSettings()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// SetSettings clamps volumes and persists s.
func (p *Progress) SetSettings(s Settings) error {
	if p == nil {
		return nil
	}
	s.MusicVolume = clampVolume(s.MusicVolume)
	s.SFXVolume = clampVolume(s.SFXVolume)

	p.mu.Lock()
	p.settings = s
	p.mu.Unlock()
	return p.save(settingsProperty, s)
}

// BestScore returns the best score seen so far.
func (p *Progress) BestScore() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.best.Score
}

// RecordScore stores score if it beats the current best. It reports whether it did.
func (p *Progress) RecordScore(level, score int) (bool, error) {
	if p == nil {
		return false, nil
	}
	p.mu.Lock()
	if score <= p.best.Score {
		p.mu.Unlock()
		return false, nil
	}
	p.best = bestRecord{Score: score, Level: level}
	rec := p.best
	p.mu.Unlock()

	return true, p.save(bestProperty, rec)
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
