// Package renderer draws field frames with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Surface draws onto the current raylib frame. Calls must happen between
// rl.BeginDrawing and rl.EndDrawing on the window's thread.
type Surface struct{}

// NewSurface creates a raylib-backed surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Clear fills the frame with bg.
func (s *Surface) Clear(bg color.NRGBA) {
	rl.ClearBackground(toRL(bg))
}

// FillCircle draws a filled circle.
func (s *Surface) FillCircle(x, y, radius float64, c color.NRGBA) {
	rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, float32(radius), toRL(c))
}

// StrokeLine draws a line segment of the given width.
func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	rl.DrawLineEx(
		rl.Vector2{X: float32(x1), Y: float32(y1)},
		rl.Vector2{X: float32(x2), Y: float32(y2)},
		float32(width),
		toRL(c),
	)
}

// toRL converts a straight-alpha colour; raylib blends with straight alpha.
func toRL(c color.NRGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
