package entity

import (
	"fmt"

	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
	"github.com/milk9111/coindash/prefabs"
)

// NewCamera builds the camera from camera.yaml, sized to the screen.
func NewCamera(w *ecs.World, viewW, viewH float64) (ecs.Entity, error) {
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{
		X:        cameraSpec.Transform.X,
		Y:        cameraSpec.Transform.Y,
		ScaleX:   cameraSpec.Transform.ScaleX,
		ScaleY:   cameraSpec.Transform.ScaleY,
		Rotation: cameraSpec.Transform.Rotation,
	}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	zoom := cameraSpec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		TargetName: cameraSpec.Target,
		Zoom:       zoom,
		Bounded:    cameraSpec.Bounded,
		ViewW:      viewW,
		ViewH:      viewH,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}
