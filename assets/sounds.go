package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
	waveTriangle
)

var (
	pcmMu    sync.Mutex
	pcmCache = map[string][]byte{}
)

type note struct {
	freq float64
	dur  time.Duration
}

// PCM renders the clip stored under key as 16-bit little-endian stereo at
// 44.1kHz, the format ebiten's audio players read.
func PCM(key string) ([]byte, error) {
	pcmMu.Lock()
	defer pcmMu.Unlock()
	if b, ok := pcmCache[key]; ok {
		return b, nil
	}

	s, err := clip(key)
	if err != nil {
		return nil, err
	}
	b, err := render(s)
	if err != nil {
		return nil, fmt.Errorf("assets: render %q: %w", key, err)
	}
	pcmCache[key] = b
	return b, nil
}

func clip(key string) (beep.Streamer, error) {
	const rate = beep.SampleRate(sampleRate)
	switch key {
	case KeyJumpSFX:
		return melody(rate, waveSquare, 0.5, []note{{392, 40 * time.Millisecond}, {523.25, 40 * time.Millisecond}, {659.25, 60 * time.Millisecond}})
	case KeyCollectSFX:
		return melody(rate, waveSquare, 0.5, []note{{987.77, 70 * time.Millisecond}, {1318.51, 180 * time.Millisecond}})
	case KeyWinSFX:
		return melody(rate, waveTriangle, 0.8, []note{
			{523.25, 120 * time.Millisecond}, {659.25, 120 * time.Millisecond},
			{783.99, 120 * time.Millisecond}, {1046.5, 400 * time.Millisecond},
		})
	case KeyGameOverSFX:
		return melody(rate, waveSaw, 0.6, []note{
			{392, 180 * time.Millisecond}, {329.63, 180 * time.Millisecond},
			{261.63, 180 * time.Millisecond}, {196, 500 * time.Millisecond},
		})
	case KeyGameBGM:
		return backgroundMusic(rate)
	}
	if _, err := KindOf(key); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %q is not audio", ErrUnknownKey, key)
}

// backgroundMusic is an eight-bar loop: a triangle lead over a square bass.
func backgroundMusic(rate beep.SampleRate) (beep.Streamer, error) {
	const beat = 200 * time.Millisecond
	lead := []float64{
		659.25, 659.25, 0, 659.25, 0, 523.25, 659.25, 0,
		783.99, 0, 0, 0, 392, 0, 0, 0,
		523.25, 0, 392, 0, 329.63, 0, 440, 493.88,
		466.16, 440, 392, 659.25, 783.99, 880, 698.46, 783.99,
	}
	bass := []float64{130.81, 130.81, 196, 196, 174.61, 174.61, 164.81, 146.83}

	leadNotes := make([]note, len(lead))
	for i, f := range lead {
		leadNotes[i] = note{f, beat}
	}
	bassNotes := make([]note, 0, len(bass))
	for _, f := range bass {
		bassNotes = append(bassNotes, note{f, 4 * beat})
	}
	leadVoice, err := melody(rate, waveTriangle, 0.6, leadNotes)
	if err != nil {
		return nil, err
	}
	bassVoice, err := melody(rate, waveSquare, 0.25, bassNotes)
	if err != nil {
		return nil, err
	}
	return beep.Take(rate.N(time.Duration(len(lead))*beat), beep.Mix(leadVoice, bassVoice)), nil
}

func melody(rate beep.SampleRate, w wave, volume float64, notes []note) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq <= 0 {
			parts = append(parts, beep.Silence(rate.N(n.dur)))
			continue
		}
		osc, err := tone(rate, w, n.freq)
		if err != nil {
			return nil, fmt.Errorf("assets: tone %.2fHz: %w", n.freq, err)
		}
		parts = append(parts, newEnvelope(beep.Take(rate.N(n.dur), osc), n.dur, 5*time.Millisecond, n.dur/3, rate))
	}
	return withVolume(beep.Seq(parts...), volume), nil
}

func tone(rate beep.SampleRate, w wave, freq float64) (beep.Streamer, error) {
	switch w {
	case waveSquare:
		return generators.SquareTone(rate, freq)
	case waveSaw:
		return generators.SawtoothTone(rate, freq)
	case waveTriangle:
		return generators.TriangleTone(rate, freq)
	default:
		return generators.SineTone(rate, freq)
	}
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func render(s beep.Streamer) ([]byte, error) {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(v)))
			}
		}
		if !ok || n == 0 {
			break
		}
	}
	return out, s.Err()
}

func toInt16(v float64) int16 {
	v = max(-1, min(1, v))
	return int16(v * math.MaxInt16)
}

// envelope applies a linear attack and release.
type envelope struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, total: rate.N(d), attack: rate.N(attack), release: rate.N(release)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1.0
		if e.attack > 0 && e.pos < e.attack {
			g = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			g = math.Min(g, float64(left)/float64(e.release))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }
