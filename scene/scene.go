// Package scene hosts the game's screens and switches between them on
// request from gameplay.
package scene

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/coindash/assets"
)

var ErrUnknownScene = errors.New("scene: unknown scene")

// Data carries parameters into a scene. A zero field means the value was
// not given.
type Data struct {
	Level int
	Score int
}

// Scene is one screen of the game. The manager calls Init, Preload and
// Create on every entry and Shutdown on every exit; the same instance is
// reused across entries.
type Scene interface {
	Key() string
	Init(data Data)
	Preload(loader *assets.Loader)
	Create() error
	Update() error
	Draw(screen *ebiten.Image)
	Shutdown()
}

// Director is the part of the manager scenes use to move on.
type Director interface {
	Start(key string, data Data) bool
	Restart(data Data) bool
}

type transition struct {
	key  string
	data Data
}

// Manager owns the registered scenes and the active one. Transitions are
// applied between frames.
type Manager struct {
	scenes  map[string]Scene
	active  Scene
	pending *transition
}

func NewManager() *Manager {
	return &Manager{scenes: make(map[string]Scene)}
}

// Add registers s under its key, replacing any scene with the same key.
func (m *Manager) Add(s Scene) {
	if s == nil {
		return
	}
	m.scenes[s.Key()] = s
}

// Active returns the running scene, or nil before the first transition.
func (m *Manager) Active() Scene {
	return m.active
}

// Start queues a switch to key. Only the first request between two frames
// is honored.
func (m *Manager) Start(key string, data Data) bool {
	if m.pending != nil {
		log.Warn("scene request dropped", "scene", key, "pending", m.pending.key)
		return false
	}
	m.pending = &transition{key: key, data: data}
	return true
}

// Restart queues a fresh entry into the active scene.
func (m *Manager) Restart(data Data) bool {
	if m.active == nil {
		log.Warn("scene restart with no active scene")
		return false
	}
	return m.Start(m.active.Key(), data)
}

// Update applies any pending transition and then updates the active scene.
func (m *Manager) Update() error {
	if m.pending != nil {
		t := *m.pending
		m.pending = nil
		if err := m.enter(t); err != nil {
			return err
		}
	}
	if m.active == nil {
		return nil
	}
	return m.active.Update()
}

func (m *Manager) Draw(screen *ebiten.Image) {
	if m.active == nil {
		return
	}
	m.active.Draw(screen)
}

// Shutdown stops the active scene. Used when the game exits.
func (m *Manager) Shutdown() {
	if m.active != nil {
		m.active.Shutdown()
		m.active = nil
	}
}

func (m *Manager) enter(t transition) error {
	next, ok := m.scenes[t.key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, t.key)
	}
	if m.active != nil {
		m.active.Shutdown()
	}
	m.active = next

	log.Debug("entering scene", "scene", t.key, "level", t.data.Level, "score", t.data.Score)
	next.Init(t.data)
	loader := assets.NewLoader()
	next.Preload(loader)
	if err := loader.Load(); err != nil {
		return fmt.Errorf("scene %s: preload: %w", t.key, err)
	}
	if err := next.Create(); err != nil {
		return fmt.Errorf("scene %s: create: %w", t.key, err)
	}
	return nil
}
