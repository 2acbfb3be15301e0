package system

import (
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
)

// CameraSystem keeps the target centered and, for bounded cameras, the view
// inside LevelBounds.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	camEntity, cam, ok := ecs.GetFirst(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	target, ok := findEntityByNameOrTag(w, cam.TargetName)
	if !ok {
		return
	}
	targetTransform, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return
	}

	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	viewW, viewH := cam.ViewW/zoom, cam.ViewH/zoom

	x := targetTransform.X - viewW/2
	y := targetTransform.Y - viewH/2

	if cam.Bounded {
		if _, bounds, ok := ecs.GetFirst(w, component.LevelBoundsComponent.Kind()); ok {
			x = clampView(x, viewW, bounds.Width)
			y = clampView(y, viewH, bounds.Height)
		}
	}

	camTransform.X = x
	camTransform.Y = y
}

func clampView(pos, view, extent float64) float64 {
	if view >= extent {
		return 0
	}
	return min(max(pos, 0), extent-view)
}

func findEntityByNameOrTag(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "player" {
		return ecs.First(w, component.PlayerTagComponent.Kind())
	}
	return 0, false
}

// cameraView returns the camera's top-left world position and zoom.
func cameraView(w *ecs.World) (float64, float64, float64) {
	camEntity, cam, ok := ecs.GetFirst(w, component.CameraComponent.Kind())
	if !ok {
		return 0, 0, 1
	}
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, zoom
	}
	return t.X, t.Y, zoom
}
