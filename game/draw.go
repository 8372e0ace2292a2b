package game

import (
	"github.com/pthm-cable/plexus/surface"
	"github.com/pthm-cable/plexus/systems"
)

// drawParticles fills one circle per particle. Particles are copied out
// first so no query is open while the surface runs.
func (d *Driver) drawParticles(s surface.Surface) {
	d.particles = d.sim.Particles(d.particles[:0])
	for i := range d.particles {
		p := &d.particles[i]
		s.FillCircle(p.Position.X, p.Position.Y, p.Body.Radius, d.theme.Particle)
	}
}

// drawConnections strokes each connection with its fade opacity.
func (d *Driver) drawConnections(s surface.Surface, conns []systems.Connection) {
	width := d.cfg.Field.LineWidth
	for _, c := range conns {
		s.StrokeLine(c.A.X, c.A.Y, c.B.X, c.B.Y, width, withOpacity(d.theme.Line, c.Opacity))
	}
}
