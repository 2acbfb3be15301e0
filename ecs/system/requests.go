package system

import (
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
)

// RequestScene queues a scene transition for the host. Only the first
// request of a level is kept.
func RequestScene(w *ecs.World, req *component.SceneRequest) bool {
	if w == nil || req == nil || ScenePending(w) {
		return false
	}
	ent := ecs.CreateEntity(w)
	return ecs.Add(w, ent, component.SceneRequestComponent.Kind(), req) == nil
}

func ScenePending(w *ecs.World) bool {
	_, ok := ecs.First(w, component.SceneRequestComponent.Kind())
	return ok
}

// TakeSceneRequest removes and returns the pending scene request, if any.
func TakeSceneRequest(w *ecs.World) (component.SceneRequest, bool) {
	ent, req, ok := ecs.GetFirst(w, component.SceneRequestComponent.Kind())
	if !ok {
		return component.SceneRequest{}, false
	}
	out := *req
	ecs.DestroyEntity(w, ent)
	return out, true
}

// PlaySound flags a named clip on the player's audio component.
func PlaySound(w *ecs.World, name string) bool {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return false
	}
	a, ok := ecs.Get(w, player, component.AudioComponent.Kind())
	if !ok {
		return false
	}
	return a.Request(name)
}

type aabb struct {
	x, y, w, h float64
}

func bodyAABB(t *component.Transform, b *component.PhysicsBody) (aabb, bool) {
	if t == nil || b == nil || b.Width <= 0 || b.Height <= 0 {
		return aabb{}, false
	}
	x := t.X + b.OffsetX
	y := t.Y + b.OffsetY
	if !b.AlignTopLeft {
		x -= b.Width / 2
		y -= b.Height / 2
	}
	return aabb{x: x, y: y, w: b.Width, h: b.Height}, true
}
