package entity

import (
	"fmt"

	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
	"github.com/milk9111/coindash/prefabs"
)

// NewPlayer builds the player from player.yaml.
func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, spec)
}

// NewPlayerFromSpec builds the player entity. The collider is sized in
// sheet pixels and scaled by the transform, like the sprite.
func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: spec is nil")
	}

	scaleX, scaleY := spec.Transform.ScaleX, spec.Transform.ScaleY
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}

	sheet, err := loadImage(spec.Sprite.Image)
	if err != nil {
		return 0, fmt.Errorf("player: sprite image: %w", err)
	}

	defs := make(map[string]component.AnimationDef, len(spec.Animation.Defs))
	for name, d := range spec.Animation.Defs {
		defs[name] = component.AnimationDef{
			Name:       name,
			Row:        d.Row,
			ColStart:   d.ColStart,
			FrameCount: d.FrameCount,
			FrameW:     d.FrameW,
			FrameH:     d.FrameH,
			FPS:        d.FPS,
			Loop:       d.Loop,
		}
	}
	current := spec.Animation.Current
	if _, ok := defs[current]; !ok && current != "" {
		return 0, fmt.Errorf("player: unknown animation %q", current)
	}

	audioComp, err := buildAudioComponent(spec.Audio)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	e := ecs.CreateEntity(w)
	add := func(what string, err error) error {
		if err != nil {
			return fmt.Errorf("player: add %s: %w", what, err)
		}
		return nil
	}

	if err := add("tag", ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})); err != nil {
		return 0, err
	}
	if err := add("transform", ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.Transform.X,
		Y:        spec.Transform.Y,
		ScaleX:   scaleX,
		ScaleY:   scaleY,
		Rotation: spec.Transform.Rotation,
	})); err != nil {
		return 0, err
	}
	if err := add("sprite", ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:     sheet,
		UseSource: spec.Sprite.UseSource,
		OriginX:   spec.Sprite.OriginX,
		OriginY:   spec.Sprite.OriginY,
	})); err != nil {
		return 0, err
	}
	if err := add("animation", ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Sheet:   sheet,
		Defs:    defs,
		Current: current,
		Playing: spec.Animation.Playing,
	})); err != nil {
		return 0, err
	}
	if err := add("physics body", ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Collider.Width * scaleX,
		Height:   spec.Collider.Height * scaleY,
		Mass:     spec.Mass,
		Friction: spec.Collider.Friction,
		OffsetX:  spec.Collider.OffsetX * scaleX,
		OffsetY:  spec.Collider.OffsetY * scaleY,
	})); err != nil {
		return 0, err
	}
	if err := add("player", ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
	})); err != nil {
		return 0, err
	}
	if err := add("input", ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})); err != nil {
		return 0, err
	}
	if err := add("collision", ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})); err != nil {
		return 0, err
	}
	if err := add("render layer", ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index})); err != nil {
		return 0, err
	}
	if audioComp != nil {
		if err := add("audio", ecs.Add(w, e, component.AudioComponent.Kind(), audioComp)); err != nil {
			return 0, err
		}
	}

	return e, nil
}
