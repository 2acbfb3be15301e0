package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
)

// KeyState reports whether a key is held. Tests swap it for a fake.
type KeyState func(ebiten.Key) bool

type InputSystem struct {
	pressed KeyState
}

func NewInputSystem() *InputSystem {
	return &InputSystem{pressed: ebiten.IsKeyPressed}
}

func NewInputSystemWithKeys(pressed KeyState) *InputSystem {
	if pressed == nil {
		pressed = ebiten.IsKeyPressed
	}
	return &InputSystem{pressed: pressed}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	left := i.pressed(ebiten.KeyArrowLeft)
	right := i.pressed(ebiten.KeyArrowRight)
	up := i.pressed(ebiten.KeyArrowUp)
	down := i.pressed(ebiten.KeyArrowDown)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		const stickDeadzone = 0.2
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		left = left || x < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		right = right || x > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		up = up || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		down = down || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.Left = left
		input.Right = right
		input.Up = up
		input.Down = down
	})
}
