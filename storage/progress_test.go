package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

func openTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	appName := fmt.Sprintf("coindash_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return m
}

func TestSettingsScale(t *testing.T) {
	tests := []struct {
		name      string
		s         Settings
		wantMusic float64
		wantSFX   float64
	}{
		{"defaults", DefaultSettings(), 1, 1},
		{"muted", Settings{MusicVolume: 1, SFXVolume: 1, Mute: true}, 0, 0},
		{"clamped", Settings{MusicVolume: 2, SFXVolume: -1}, 1, 0},
		{"half", Settings{MusicVolume: 0.5, SFXVolume: 0.25}, 0.5, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.MusicScale(); got != tt.wantMusic {
				t.Fatalf("MusicScale() = %v, want %v", got, tt.wantMusic)
			}
			if got := tt.s.SFXScale(); got != tt.wantSFX {
				t.Fatalf("SFXScale() = %v, want %v", got, tt.wantSFX)
			}
		})
	}
}

func TestProgressInMemory(t *testing.T) {
	p := NewProgress(nil)
	if p.Persistent() {
		t.Fatalf("nil manager should not be persistent")
	}
	if p.Settings() != DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", p.Settings())
	}

	better, err := p.RecordScore(1, 60)
	if err != nil || !better {
		t.Fatalf("RecordScore(60) = %v, %v", better, err)
	}
	better, err = p.RecordScore(2, 30)
	if err != nil || better {
		t.Fatalf("RecordScore(30) = %v, %v; want no improvement", better, err)
	}
	if p.BestScore() != 60 {
		t.Fatalf("BestScore() = %d, want 60", p.BestScore())
	}

	if err := p.SetSettings(Settings{MusicVolume: 3, SFXVolume: 0.4, Mute: true}); err != nil {
		t.Fatalf("SetSettings() failed: %v", err)
	}
	got := p.Settings()
	if got.MusicVolume != 1 || got.SFXVolume != 0.4 || !got.Mute {
		t.Fatalf("unexpected settings: %+v", got)
	}
}

func TestProgressNilReceiver(t *testing.T) {
	var p *Progress
	if p.BestScore() != 0 {
		t.Fatalf("nil BestScore should be 0")
	}
	if p.Settings() != DefaultSettings() {
		t.Fatalf("nil Settings should be defaults")
	}
	if ok, err := p.RecordScore(1, 10); ok || err != nil {
		t.Fatalf("nil RecordScore = %v, %v", ok, err)
	}
}

func TestProgressPersists(t *testing.T) {
	m := openTestManager(t)

	p := NewProgress(m)
	if _, err := p.RecordScore(3, 190); err != nil {
		t.Fatalf("RecordScore() failed: %v", err)
	}
	if err := p.SetSettings(Settings{MusicVolume: 0.3, SFXVolume: 0.7}); err != nil {
		t.Fatalf("SetSettings() failed: %v", err)
	}

	reloaded := NewProgress(m)
	if reloaded.BestScore() != 190 {
		t.Fatalf("reloaded BestScore() = %d, want 190", reloaded.BestScore())
	}
	s := reloaded.Settings()
	if s.MusicVolume != 0.3 || s.SFXVolume != 0.7 || s.Mute {
		t.Fatalf("reloaded settings = %+v", s)
	}
}
