package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
	"github.com/milk9111/coindash/prefabs"
)

const hudRenderLayer = 100

// NewHUD creates the fixed-to-screen score text, coin icon and coin count.
func NewHUD(w *ecs.World, hud prefabs.HUDSpec) error {
	var c color.Color = color.White
	if hud.Color != nil && hud.Color.Color != nil {
		c = hud.Color.Color
	}

	if _, err := newHUDText(w, "Score: 0", hud.Score, hud.FontSize, c, component.ScoreTextTagComponent.Kind()); err != nil {
		return fmt.Errorf("hud: score text: %w", err)
	}
	if _, err := newHUDText(w, "x 0", hud.CoinCount, hud.FontSize, c, component.CoinTextTagComponent.Kind()); err != nil {
		return fmt.Errorf("hud: coin text: %w", err)
	}

	if hud.CoinIcon.Image == "" {
		return nil
	}
	img, err := loadImage(hud.CoinIcon.Image)
	if err != nil {
		return fmt.Errorf("hud: coin icon: %w", err)
	}
	icon := ecs.CreateEntity(w)
	var originX, originY float64
	if img != nil {
		b := img.Bounds()
		originX, originY = float64(b.Dx())/2, float64(b.Dy())/2
	}
	if err := ecs.Add(w, icon, component.TransformComponent.Kind(), &component.Transform{X: hud.CoinIcon.X, Y: hud.CoinIcon.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return fmt.Errorf("hud: coin icon transform: %w", err)
	}
	if err := ecs.Add(w, icon, component.SpriteComponent.Kind(), &component.Sprite{Image: img, OriginX: originX, OriginY: originY}); err != nil {
		return fmt.Errorf("hud: coin icon sprite: %w", err)
	}
	if err := ecs.Add(w, icon, component.ScreenSpaceComponent.Kind(), &component.ScreenSpace{}); err != nil {
		return fmt.Errorf("hud: coin icon screen space: %w", err)
	}
	if err := ecs.Add(w, icon, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: hudRenderLayer}); err != nil {
		return fmt.Errorf("hud: coin icon layer: %w", err)
	}
	return nil
}

func newHUDText[T any](w *ecs.World, value string, pos prefabs.PositionSpec, size float64, c color.Color, tag component.ComponentKind[T]) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TextComponent.Kind(), &component.Text{Value: value, Size: size, Color: c}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.ScreenSpaceComponent.Kind(), &component.ScreenSpace{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: hudRenderLayer}); err != nil {
		return 0, err
	}
	var zero T
	if err := ecs.Add(w, e, tag, &zero); err != nil {
		return 0, err
	}
	return e, nil
}
