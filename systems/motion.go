package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/plexus/components"
)

// Pointer is the live pointer state. Present is false when the pointer has
// left the tracked region.
type Pointer struct {
	X, Y    float64
	Present bool
	Radius  float64 // influence radius
}

// Bounds is the drawing surface extent.
type Bounds struct {
	Width, Height float64
}

// Displacement returns the repulsion vector for a particle at pos and whether
// the particle is inside the influence zone. The vector points toward the
// pointer; StepParticle subtracts it. A particle exactly under the pointer
// gets a zero vector.
func (p Pointer) Displacement(pos components.Position, density float64) (r2.Vec, bool) {
	if !p.Present {
		return r2.Vec{}, false
	}
	d := r2.Sub(r2.Vec{X: p.X, Y: p.Y}, r2.Vec(pos))
	dist := r2.Norm(d)
	if !(dist < p.Radius) {
		return r2.Vec{}, false
	}
	if dist == 0 {
		return r2.Vec{}, true
	}
	force := (p.Radius - dist) / p.Radius
	return r2.Scale(force*density/dist, d), true
}

// StepParticle advances one particle by a frame. Inside the pointer's zone it
// is pushed away from the pointer, otherwise each axis eases 1/easeDivisor of
// the remaining offset back toward the anchor. The result is clamped to the
// bounds minus the particle radius.
func StepParticle(pos *components.Position, anchor components.Anchor, body components.Body, ptr Pointer, bounds Bounds, easeDivisor float64) {
	if push, inside := ptr.Displacement(*pos, body.Density); inside {
		pos.X -= push.X
		pos.Y -= push.Y
	} else {
		pos.X -= (pos.X - anchor.X) / easeDivisor
		pos.Y -= (pos.Y - anchor.Y) / easeDivisor
	}

	pos.X = clampMargin(pos.X, body.Radius, bounds.Width)
	pos.Y = clampMargin(pos.Y, body.Radius, bounds.Height)
}
