package system

import (
	"image"

	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
)

const ticksPerSecond = 60.0

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 {
			return
		}

		if anim.Playing {
			ticksPerFrame := 1
			if def.FPS > 0 {
				ticksPerFrame = max(int(ticksPerSecond/def.FPS), 1)
			}
			anim.FrameTimer++
			if anim.FrameTimer >= ticksPerFrame {
				anim.FrameTimer = 0
				anim.Frame++
				if anim.Frame >= def.FrameCount {
					if def.Loop {
						anim.Frame = 0
					} else {
						anim.Frame = def.FrameCount - 1
						anim.Playing = false
					}
				}
			}
		}

		x := (def.ColStart + anim.Frame) * def.FrameW
		y := def.Row * def.FrameH
		if anim.Sheet != nil {
			sprite.Image = anim.Sheet
		}
		sprite.Source = image.Rect(x, y, x+def.FrameW, y+def.FrameH)
		sprite.UseSource = true
	})
}
