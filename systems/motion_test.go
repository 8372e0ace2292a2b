package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/plexus/components"
)

var testBounds = Bounds{Width: 800, Height: 600}

func TestStepParticleClampsToBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	body := components.Body{Radius: 2, Density: 30}

	for i := 0; i < 2000; i++ {
		// Anchors and pointer anywhere, including outside the surface
		anchor := components.Anchor{X: rng.Float64()*1000 - 100, Y: rng.Float64()*800 - 100}
		pos := components.Position{X: anchor.X, Y: anchor.Y}
		ptr := Pointer{
			X:       rng.Float64() * testBounds.Width,
			Y:       rng.Float64() * testBounds.Height,
			Present: rng.Intn(2) == 0,
			Radius:  150,
		}

		StepParticle(&pos, anchor, body, ptr, testBounds, 10)

		if pos.X < body.Radius || pos.X > testBounds.Width-body.Radius ||
			pos.Y < body.Radius || pos.Y > testBounds.Height-body.Radius {
			t.Fatalf("position (%v,%v) escaped bounds", pos.X, pos.Y)
		}
	}
}

func TestStepParticleEasesTowardAnchor(t *testing.T) {
	anchor := components.Anchor{X: 400, Y: 300}
	pos := components.Position{X: 500, Y: 240}
	body := components.Body{Radius: 2, Density: 5}
	offX0, offY0 := pos.X-anchor.X, pos.Y-anchor.Y

	prev := math.Hypot(offX0, offY0)
	for n := 1; n <= 60; n++ {
		StepParticle(&pos, anchor, body, Pointer{}, testBounds, 10)

		dist := math.Hypot(pos.X-anchor.X, pos.Y-anchor.Y)
		if !(dist < prev) {
			t.Fatalf("step %d: distance %v did not decrease from %v", n, dist, prev)
		}
		if dist == 0 {
			t.Fatalf("step %d: reached anchor exactly", n)
		}
		prev = dist

		want := math.Pow(0.9, float64(n))
		if gotX := (pos.X - anchor.X) / offX0; math.Abs(gotX-want) > 1e-9 {
			t.Fatalf("step %d: x offset ratio %v, want %v", n, gotX, want)
		}
		if gotY := (pos.Y - anchor.Y) / offY0; math.Abs(gotY-want) > 1e-9 {
			t.Fatalf("step %d: y offset ratio %v, want %v", n, gotY, want)
		}
	}
}

func TestStepParticleRepelsFromPointer(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
	}{
		{"pointer right", 420, 300},
		{"pointer above", 400, 250},
		{"pointer diagonal", 350, 350},
		{"pointer near", 401, 300.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := components.Position{X: 400, Y: 300}
			before := pos
			ptr := Pointer{X: tc.px, Y: tc.py, Present: true, Radius: 150}

			StepParticle(&pos, components.Anchor{X: 400, Y: 300}, components.Body{Radius: 2, Density: 12}, ptr, testBounds, 10)

			dispX, dispY := pos.X-before.X, pos.Y-before.Y
			toPtrX, toPtrY := tc.px-before.X, tc.py-before.Y
			if dot := dispX*toPtrX + dispY*toPtrY; !(dot < 0) {
				t.Errorf("expected displacement away from pointer, dot product %v", dot)
			}
		})
	}
}

func TestStepParticleRepulsionMagnitude(t *testing.T) {
	pos := components.Position{X: 400, Y: 300}
	ptr := Pointer{X: 450, Y: 300, Present: true, Radius: 100}
	body := components.Body{Radius: 2, Density: 10}

	StepParticle(&pos, components.Anchor{X: 400, Y: 300}, body, ptr, testBounds, 10)

	// force = (100-50)/100 = 0.5, push = 0.5 * 10 along -x
	if math.Abs(pos.X-395) > 1e-9 || pos.Y != 300 {
		t.Errorf("expected (395, 300), got (%v, %v)", pos.X, pos.Y)
	}
}

func TestStepParticleOutsideRadiusEases(t *testing.T) {
	pos := components.Position{X: 300, Y: 300}
	anchor := components.Anchor{X: 200, Y: 300}
	ptr := Pointer{X: 600, Y: 300, Present: true, Radius: 150}

	StepParticle(&pos, anchor, components.Body{Radius: 2, Density: 30}, ptr, testBounds, 10)

	if math.Abs(pos.X-290) > 1e-9 {
		t.Errorf("expected easing to x=290 when pointer is out of range, got %v", pos.X)
	}
}

func TestStepParticleCoincidentPointer(t *testing.T) {
	pos := components.Position{X: 400, Y: 300}
	ptr := Pointer{X: 400, Y: 300, Present: true, Radius: 150}

	StepParticle(&pos, components.Anchor{X: 400, Y: 300}, components.Body{Radius: 2, Density: 30}, ptr, testBounds, 10)

	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
		t.Fatalf("coincident pointer produced NaN position (%v, %v)", pos.X, pos.Y)
	}
	if pos.X != 400 || pos.Y != 300 {
		t.Errorf("expected zero displacement, got (%v, %v)", pos.X, pos.Y)
	}
}

func TestStepParticleZeroRadiusPointer(t *testing.T) {
	pos := components.Position{X: 410, Y: 300}
	ptr := Pointer{X: 410, Y: 300, Present: true, Radius: 0}

	StepParticle(&pos, components.Anchor{X: 400, Y: 300}, components.Body{Radius: 2, Density: 30}, ptr, testBounds, 10)

	if math.Abs(pos.X-409) > 1e-9 {
		t.Errorf("expected zero-radius pointer to have no influence, got x=%v", pos.X)
	}
}

func TestPointerDisplacementAbsent(t *testing.T) {
	if _, inside := (Pointer{X: 1, Y: 1, Radius: 500}).Displacement(components.Position{X: 1, Y: 2}, 5); inside {
		t.Error("absent pointer must not report influence")
	}
}
