package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrUnknownMap = errors.New("levels: unknown map")

// Key returns the tilemap asset key for a level number.
func Key(level int) string {
	return "map" + strconv.Itoa(level)
}

// LoadMapFromFS reads and parses the embedded tilemap stored under key.
func LoadMapFromFS(key string) (*Map, error) {
	data, err := fs.ReadFile(LevelsFS, key+".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMap, key)
		}
		return nil, fmt.Errorf("read level: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", key, err)
	}
	return m, nil
}
