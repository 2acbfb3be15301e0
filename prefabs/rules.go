package prefabs

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const defaultPickupPoints = 10

// PickupRules runs the pickup script once per collected tile. The script
// sees `tile` and `level` and must set `points`.
type PickupRules struct {
	mu       sync.Mutex
	name     string
	compiled *tengo.Compiled
}

func LoadPickupRules(name string) (*PickupRules, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	return NewPickupRules(name, src)
}

func NewPickupRules(name string, src []byte) (*PickupRules, error) {
	script := tengo.NewScript(src)
	_ = script.Add("tile", 0)
	_ = script.Add("level", 0)
	script.SetImports(stdlib.GetModuleMap("math", "text"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile %s: %w", name, err)
	}
	return &PickupRules{name: name, compiled: compiled}, nil
}

// Points falls back to the default award when the script fails.
func (r *PickupRules) Points(tileIndex, level int) int {
	if r == nil || r.compiled == nil {
		return defaultPickupPoints
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.compiled.Set("tile", tileIndex); err != nil {
		log.Warn("pickup rules: set tile", "script", r.name, "err", err)
		return defaultPickupPoints
	}
	if err := r.compiled.Set("level", level); err != nil {
		log.Warn("pickup rules: set level", "script", r.name, "err", err)
		return defaultPickupPoints
	}
	if err := r.compiled.Run(); err != nil {
		log.Warn("pickup rules: run", "script", r.name, "err", err)
		return defaultPickupPoints
	}
	if !r.compiled.IsDefined("points") {
		log.Warn("pickup rules: script did not set points", "script", r.name)
		return defaultPickupPoints
	}
	return r.compiled.Get("points").Int()
}
