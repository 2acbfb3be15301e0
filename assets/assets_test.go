package assets

import (
	"errors"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		key  string
		want Kind
		err  bool
	}{
		{"map1", KindTileMap, false},
		{"map3", KindTileMap, false},
		{"tiles", KindImage, false},
		{"gameBGM", KindAudio, false},
		{"map4", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			got, err := KindOf(tc.key)
			if tc.err {
				if !errors.Is(err, ErrUnknownKey) {
					t.Fatalf("expected ErrUnknownKey, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("KindOf(%q) = %v, %v; want %v", tc.key, got, err, tc.want)
			}
		})
	}
}

func TestLoaderTileMaps(t *testing.T) {
	l := NewLoader()
	l.Queue("map1", "map2", "map1", "map3")
	if got := len(l.Pending()); got != 3 {
		t.Fatalf("expected duplicates to be dropped, got %d pending", got)
	}
	if err := l.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := len(l.Pending()); got != 0 {
		t.Fatalf("expected empty queue after load, got %d", got)
	}
}

func TestLoaderUnknownKey(t *testing.T) {
	l := NewLoader()
	l.Queue("map9")
	if err := l.Load(); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}

func TestTileMapReturnsCopies(t *testing.T) {
	a, err := TileMap("map1")
	if err != nil {
		t.Fatal(err)
	}
	coins, err := a.Layer("coin")
	if err != nil {
		t.Fatal(err)
	}
	tiles := coins.FilterTiles(nil)
	if len(tiles) == 0 {
		t.Fatal("expected coin tiles in map1")
	}
	coins.RemoveTileAt(tiles[0].X, tiles[0].Y)

	b, err := TileMap("map1")
	if err != nil {
		t.Fatal(err)
	}
	fresh, _ := b.Layer("coin")
	if fresh.TileAt(tiles[0].X, tiles[0].Y) == 0 {
		t.Fatal("removing a tile leaked into the cached map")
	}
}

func TestTileMapRejectsOtherKinds(t *testing.T) {
	if _, err := TileMap("coin"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey for image key, got %v", err)
	}
}

func TestRGBA(t *testing.T) {
	cases := []struct {
		key  string
		w, h int
	}{
		{KeyTiles, TileSize * 5, TileSize},
		{KeyMario, MarioFrameW * MarioFrames, MarioFrameH},
		{KeyCoin, TileSize, TileSize},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			img, err := RGBA(tc.key)
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != tc.w || b.Dy() != tc.h {
				t.Fatalf("size %dx%d, want %dx%d", b.Dx(), b.Dy(), tc.w, tc.h)
			}
		})
	}

	coin, _ := RGBA(KeyCoin)
	if _, _, _, a := coin.At(TileSize/2, TileSize/2).RGBA(); a == 0 {
		t.Fatal("coin center should be opaque")
	}
	if _, _, _, a := coin.At(0, 0).RGBA(); a != 0 {
		t.Fatal("coin corner should be transparent")
	}

	if _, err := RGBA(KeyJumpSFX); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey for audio key, got %v", err)
	}
}

func TestPCM(t *testing.T) {
	for _, key := range []string{KeyJumpSFX, KeyCollectSFX, KeyWinSFX, KeyGameOverSFX, KeyGameBGM} {
		t.Run(key, func(t *testing.T) {
			b, err := PCM(key)
			if err != nil {
				t.Fatal(err)
			}
			// 16-bit stereo frames
			if len(b) == 0 || len(b)%4 != 0 {
				t.Fatalf("unexpected pcm length %d", len(b))
			}
			nonZero := false
			for _, v := range b {
				if v != 0 {
					nonZero = true
					break
				}
			}
			if !nonZero {
				t.Fatal("pcm is silent")
			}
		})
	}

	bgm, _ := PCM(KeyGameBGM)
	if got, want := len(bgm)/4, sampleRate*32/5; got < want-sampleRate/10 || got > want+sampleRate/10 {
		t.Fatalf("bgm has %d frames, want about %d", got, want)
	}

	if _, err := PCM("tiles"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}
