package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plexus/game"
)

// HandleInput polls keyboard, pointer and window state and forwards them to
// the driver's simulation state. Call once per frame before Tick.
func HandleInput(d *game.Driver, panel *ControlsPanel) {
	s := d.State()

	handleResize(s)

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		d.SetPaused(!d.Paused())
	}
	if rl.IsKeyPressed(rl.KeyH) {
		panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		s.ResetToDefaults()
	}

	// Pointer leaving the window, or resting on the panel, reads as absent
	mouse := rl.GetMousePosition()
	if !rl.IsCursorOnScreen() || panel.Contains(mouse) {
		s.ClearPointer()
		return
	}
	s.SetPointer(float64(mouse.X), float64(mouse.Y))
}

// handleResize propagates new window dimensions.
func handleResize(s *game.State) {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	p := s.Params()
	if w == p.Width && h == p.Height {
		return
	}
	s.NotifySurfaceResized(w, h)
}
