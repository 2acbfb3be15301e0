package assets

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/coindash/levels"
)

var (
	cacheMu  sync.Mutex
	images   = map[string]*ebiten.Image{}
	tilemaps = map[string]*levels.Map{}
)

// Loader is the preload queue a scene fills before it is created. Loaded
// assets are cached for the life of the process.
type Loader struct {
	queue []string
	seen  map[string]struct{}
}

func NewLoader() *Loader {
	return &Loader{seen: make(map[string]struct{})}
}

// Queue registers keys to resolve on the next Load. Duplicates are ignored.
func (l *Loader) Queue(keys ...string) {
	for _, k := range keys {
		if _, ok := l.seen[k]; ok {
			continue
		}
		l.seen[k] = struct{}{}
		l.queue = append(l.queue, k)
	}
}

func (l *Loader) Pending() []string {
	return append([]string(nil), l.queue...)
}

// Load resolves every queued key. The first failure aborts the load.
func (l *Loader) Load() error {
	queue := l.queue
	l.queue = nil
	clear(l.seen)

	for _, key := range queue {
		kind, err := KindOf(key)
		if err != nil {
			return err
		}
		switch kind {
		case KindTileMap:
			_, err = TileMap(key)
		case KindImage:
			_, err = Image(key)
		case KindAudio:
			_, err = PCM(key)
		}
		if err != nil {
			return fmt.Errorf("assets: load %s %q: %w", kind, key, err)
		}
		log.Debug("asset loaded", "key", key, "kind", kind)
	}
	return nil
}

// TileMap returns a private copy of the tilemap stored under key, so the
// caller may remove tiles freely.
func TileMap(key string) (*levels.Map, error) {
	if kind, err := KindOf(key); err != nil {
		return nil, err
	} else if kind != KindTileMap {
		return nil, fmt.Errorf("%w: %q is %s, not tilemap", ErrUnknownKey, key, kind)
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if m, ok := tilemaps[key]; ok {
		return m.Clone(), nil
	}
	m, err := levels.LoadMapFromFS(key)
	if err != nil {
		return nil, err
	}
	tilemaps[key] = m
	return m.Clone(), nil
}

func Image(key string) (*ebiten.Image, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if img, ok := images[key]; ok {
		return img, nil
	}
	src, err := RGBA(key)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(src)
	images[key] = img
	return img, nil
}

const sampleRate = 44100

var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

func audioContext() *audio.Context {
	audioOnce.Do(func() {
		if ctx := audio.CurrentContext(); ctx != nil {
			audioCtx = ctx
			return
		}
		audioCtx = audio.NewContext(sampleRate)
	})
	return audioCtx
}

// AudioPlayer creates a fresh player for a synthesized clip.
func AudioPlayer(key string) (*audio.Player, error) {
	pcm, err := PCM(key)
	if err != nil {
		return nil, err
	}
	return audioContext().NewPlayerFromBytes(pcm), nil
}
