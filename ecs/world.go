package ecs

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/coindash/ecs/component"
)

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// RenderSystem draws world state each frame.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image)
}

// World owns entities, component stores, and system order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
	systems  []System
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]componentStore)}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Systems returns a copy of the update order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return append([]System(nil), w.systems...)
}

// Update runs all systems once, in insertion order.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		s.Update(w)
	}
}

// Draw calls every system that also implements RenderSystem.
func (w *World) Draw(screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, s := range w.systems {
		if rs, ok := s.(RenderSystem); ok {
			rs.Draw(w, screen)
		}
	}
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its id.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, st := range w.stores {
		st.remove(e.id())
	}
	return w.entities.destroy(e)
}

func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// First returns the first live entity carrying kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	st, ok := w.stores[kind.ID()]
	if !ok {
		return 0, false
	}
	for _, id := range st.ids() {
		if e, ok := w.entities.entity(id); ok {
			return e, true
		}
	}
	return 0, false
}

// Query returns live entities carrying every kind in kinds.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}

	sets := make([]componentStore, 0, len(kinds))
	for _, k := range kinds {
		st, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		sets = append(sets, st)
	}

	// iterate the smallest set
	base := 0
	for i, st := range sets {
		if st.size() < sets[base].size() {
			base = i
		}
	}

	var out []Entity
	for _, id := range sets[base].ids() {
		matched := true
		for i, st := range sets {
			if i != base && !st.has(id) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if e, ok := w.entities.entity(id); ok {
			out = append(out, e)
		}
	}
	return out
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	if st, ok := w.stores[kind.ID()]; ok {
		set, _ := st.(*sparseSet[T])
		return set
	}
	if !create {
		return nil
	}
	set := newSparseSet[T]()
	w.stores[kind.ID()] = set
	return set
}
