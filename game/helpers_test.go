package game

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/pthm-cable/plexus/config"
)

// testConfig returns the embedded defaults with the particle count overridden.
func testConfig(t *testing.T, particles int) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Field.ParticleCount = particles
	return cfg
}

func newTestState(t *testing.T, particles int) *State {
	t.Helper()
	return NewState(testConfig(t, particles), rand.New(rand.NewSource(1)))
}

func newTestDriver(t *testing.T, cfg *config.Config, opts Options) *Driver {
	t.Helper()
	d, err := NewDriver(cfg, opts)
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	t.Cleanup(d.Stop)
	return d
}

// panicSurface panics on its first Clear and then behaves as a no-op surface.
type panicSurface struct {
	armed bool
}

func (p *panicSurface) Clear(color.NRGBA) {
	if p.armed {
		p.armed = false
		panic("surface lost")
	}
}

func (p *panicSurface) FillCircle(x, y, radius float64, c color.NRGBA) {}

func (p *panicSurface) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {}

// faultySurface panics from its circle or line calls while armed.
type faultySurface struct {
	failCircles bool
	failLines   bool
}

func (f *faultySurface) Clear(color.NRGBA) {}

func (f *faultySurface) FillCircle(x, y, radius float64, c color.NRGBA) {
	if f.failCircles {
		panic("circle failed")
	}
}

func (f *faultySurface) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	if f.failLines {
		panic("line failed")
	}
}
