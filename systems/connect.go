package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/plexus/components"
)

// Connection is a proximity line between two particles.
type Connection struct {
	A, B     components.Position
	Distance float64
	Opacity  float64 // 1 at distance 0, falling linearly to 0 at the threshold
}

// Connector finds proximity connections through the spatial grid.
type Connector struct {
	Threshold float64
	// Dedupe emits each pair once, from the particle with the lower index.
	// Without it every pair is emitted from both ends.
	Dedupe bool

	posMap    *ecs.Map[components.Position]
	bodyMap   *ecs.Map[components.Body]
	neighbors []ecs.Entity

	candidates int
}

// NewConnector creates a connector reading particle components from world.
func NewConnector(world *ecs.World, threshold float64, dedupe bool) *Connector {
	return &Connector{
		Threshold: threshold,
		Dedupe:    dedupe,
		posMap:    ecs.NewMap[components.Position](world),
		bodyMap:   ecs.NewMap[components.Body](world),
		neighbors: make([]ecs.Entity, 0, 64),
	}
}

// ConnectInto appends the connections of particle e to dst and returns the
// updated slice. The grid query includes e itself; it is skipped here.
func (c *Connector) ConnectInto(dst []Connection, grid *Grid, e ecs.Entity, pos components.Position, body components.Body) []Connection {
	c.neighbors = grid.NeighborsInto(c.neighbors[:0], pos.X, pos.Y)

	for _, other := range c.neighbors {
		if other == e {
			continue
		}
		c.candidates++

		if c.Dedupe {
			ob := c.bodyMap.Get(other)
			if ob == nil || ob.Index <= body.Index {
				continue
			}
		}

		op := c.posMap.Get(other)
		if op == nil {
			continue
		}

		dx := pos.X - op.X
		dy := pos.Y - op.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < c.Threshold {
			dst = append(dst, Connection{
				A:        pos,
				B:        *op,
				Distance: dist,
				Opacity:  1 - dist/c.Threshold,
			})
		}
	}
	return dst
}

// Candidates returns the number of non-self neighbour entries examined since
// the last ResetCandidates.
func (c *Connector) Candidates() int { return c.candidates }

// ResetCandidates zeroes the candidate counter.
func (c *Connector) ResetCandidates() { c.candidates = 0 }
