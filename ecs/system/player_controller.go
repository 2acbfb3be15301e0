package system

import (
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
)

const (
	defaultMoveSpeed = 160.0
	defaultJumpSpeed = 300.0
)

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	) {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if bodyComp.Body == nil {
			continue
		}
		anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
		sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

		moveSpeed := player.MoveSpeed
		if moveSpeed == 0 {
			moveSpeed = defaultMoveSpeed
		}
		jumpSpeed := player.JumpSpeed
		if jumpSpeed == 0 {
			jumpSpeed = defaultJumpSpeed
		}

		vel := bodyComp.Body.Velocity()
		switch {
		case input.Left:
			vel.X = -moveSpeed
			anim.Play("left", true)
			if sprite != nil {
				sprite.FacingLeft = true
			}
		case input.Right:
			vel.X = moveSpeed
			anim.Play("right", true)
			if sprite != nil {
				sprite.FacingLeft = false
			}
		default:
			vel.X = 0
			anim.Play("turn", true)
		}

		// no debounce: holding up on the ground jumps again on landing
		if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok && input.Up && pc.Grounded {
			PlaySound(w, "jump")
			vel.Y = -jumpSpeed
		}

		bodyComp.Body.SetVelocityVector(vel)
	}
}
