//go:build cgo

package gui

import rl "github.com/gen2brain/raylib-go/raylib"

type hotkey struct {
	key     int32
	command string
}

// Digits add an active event of that kind.
var hotkeys = []hotkey{
	{rl.KeyH, "hour"},
	{rl.KeyD, "day"},
	{rl.KeyS, "save"},
	{rl.KeyL, "load"},
	{rl.KeyQ, "quit"},
	{rl.KeyOne, "add storm 0 2 1 1.2"},
	{rl.KeyTwo, "add blizzard 0 2 1 1.0"},
	{rl.KeyThree, "add solar surge 0 2 1 1.0"},
	{rl.KeyFour, "add acid shower 0 2 1 1.0"},
}

// hotkeysEnabled is false while the command line has focus.
func (a *App) hotkeysEnabled() bool {
	return !a.inputMode && !ctrlDown() && !altDown()
}

func (a *App) pressedHotkeys() []string {
	if !a.hotkeysEnabled() {
		return nil
	}
	var out []string
	for _, hk := range hotkeys {
		if rl.IsKeyPressed(hk.key) {
			out = append(out, hk.command)
		}
	}
	return out
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
}

func altDown() bool {
	return rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt)
}
