package assets

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownKey = errors.New("assets: unknown key")

type Kind int

const (
	KindImage Kind = iota + 1
	KindTileMap
	KindAudio
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindTileMap:
		return "tilemap"
	case KindAudio:
		return "audio"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	KeyTiles       = "tiles"
	KeyMario       = "mario"
	KeyCoin        = "coin"
	KeyJumpSFX     = "jumpSFX"
	KeyWinSFX      = "winSFX"
	KeyCollectSFX  = "collectSFX"
	KeyGameOverSFX = "gameoverSFX"
	KeyGameBGM     = "gameBGM"
)

var registry = map[string]Kind{
	"map1":         KindTileMap,
	"map2":         KindTileMap,
	"map3":         KindTileMap,
	KeyTiles:       KindImage,
	KeyMario:       KindImage,
	KeyCoin:        KindImage,
	KeyJumpSFX:     KindAudio,
	KeyWinSFX:      KindAudio,
	KeyCollectSFX:  KindAudio,
	KeyGameOverSFX: KindAudio,
	KeyGameBGM:     KindAudio,
}

// KindOf reports what a key resolves to.
func KindOf(key string) (Kind, error) {
	k, ok := registry[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return k, nil
}

// Keys lists every registered key in sorted order.
func Keys() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
