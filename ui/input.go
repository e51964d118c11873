package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbits/game"
)

// heldKeys repeat their action every frame while down.
var heldKeys = []struct {
	key    int32
	action game.Action
}{
	{rl.KeyUp, game.ActionPanUp},
	{rl.KeyDown, game.ActionPanDown},
	{rl.KeyLeft, game.ActionPanLeft},
	{rl.KeyRight, game.ActionPanRight},
}

// pressedKeys fire once per press.
var pressedKeys = []struct {
	key    int32
	action game.Action
}{
	{rl.KeyEqual, game.ActionZoomIn},
	{rl.KeyKpAdd, game.ActionZoomIn},
	{rl.KeyMinus, game.ActionZoomOut},
	{rl.KeyKpSubtract, game.ActionZoomOut},
	{rl.KeySpace, game.ActionTogglePause},
	{rl.KeyR, game.ActionReset},
	{rl.KeyC, game.ActionToggleCollisions},
	{rl.KeyN, game.ActionStepOnce},
}

// KeyActions appends the actions requested by the keyboard this frame.
func KeyActions(dst []game.Action) []game.Action {
	for _, k := range heldKeys {
		if rl.IsKeyDown(k.key) {
			dst = append(dst, k.action)
		}
	}
	for _, k := range pressedKeys {
		if rl.IsKeyPressed(k.key) {
			dst = append(dst, k.action)
		}
	}
	return dst
}
