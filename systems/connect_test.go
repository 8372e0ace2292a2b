package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/plexus/components"
)

// connectAll runs the connector over every particle of f.
func connectAll(f *testField, g *Grid, c *Connector, entities []ecs.Entity) []Connection {
	bodyMap := ecs.NewMap[components.Body](f.world)
	var conns []Connection
	for _, e := range entities {
		conns = c.ConnectInto(conns, g, e, *f.posMap.Get(e), *bodyMap.Get(e))
	}
	return conns
}

func TestConnectOpacityNearThreshold(t *testing.T) {
	const threshold = 40.0
	f := newTestField()
	g := NewGrid(threshold, 400, 400)

	a := f.spawn(100, 100)
	b := f.spawn(100+threshold-1, 100)
	g.Insert(a, 100, 100)
	g.Insert(b, 100+threshold-1, 100)

	c := NewConnector(f.world, threshold, true)
	conns := connectAll(f, g, c, []ecs.Entity{a, b})

	if len(conns) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(conns))
	}
	if want := 1 / threshold; math.Abs(conns[0].Opacity-want) > 1e-9 {
		t.Errorf("expected opacity %v, got %v", want, conns[0].Opacity)
	}
}

func TestConnectThresholdExclusive(t *testing.T) {
	const threshold = 40.0
	f := newTestField()
	g := NewGrid(threshold, 400, 400)

	a := f.spawn(100, 100)
	b := f.spawn(100+threshold, 100)
	g.Insert(a, 100, 100)
	g.Insert(b, 100+threshold, 100)

	conns := connectAll(f, g, NewConnector(f.world, threshold, false), []ecs.Entity{a, b})
	if len(conns) != 0 {
		t.Errorf("expected no connection at exactly the threshold, got %d", len(conns))
	}
}

func TestConnectDedupe(t *testing.T) {
	f := newTestField()
	g := NewGrid(40, 400, 400)

	var entities []ecs.Entity
	for _, p := range [][2]float64{{100, 100}, {110, 100}, {100, 115}, {300, 300}} {
		e := f.spawn(p[0], p[1])
		g.Insert(e, p[0], p[1])
		entities = append(entities, e)
	}

	once := connectAll(f, g, NewConnector(f.world, 40, true), entities)
	twice := connectAll(f, g, NewConnector(f.world, 40, false), entities)

	if len(once) != 3 {
		t.Errorf("expected 3 unique connections, got %d", len(once))
	}
	if len(twice) != 2*len(once) {
		t.Errorf("expected double-drawn pairs (%d), got %d", 2*len(once), len(twice))
	}
}

// TestConnectNeverExceedsThreshold checks every emitted pair against the threshold
// and the connection set against a brute-force scan.
func TestConnectNeverExceedsThreshold(t *testing.T) {
	const threshold = 40.0
	rng := rand.New(rand.NewSource(11))
	f := newTestField()
	g := NewGrid(threshold, 500, 500)

	var entities []ecs.Entity
	var pts [][2]float64
	for i := 0; i < 400; i++ {
		x, y := rng.Float64()*500, rng.Float64()*500
		e := f.spawn(x, y)
		g.Insert(e, x, y)
		entities = append(entities, e)
		pts = append(pts, [2]float64{x, y})
	}

	conns := connectAll(f, g, NewConnector(f.world, threshold, true), entities)
	for _, c := range conns {
		d := math.Hypot(c.A.X-c.B.X, c.A.Y-c.B.Y)
		if d >= threshold {
			t.Fatalf("connection at distance %v >= threshold", d)
		}
		if c.Opacity <= 0 || c.Opacity > 1 {
			t.Fatalf("opacity %v out of (0,1]", c.Opacity)
		}
	}

	brute := 0
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			if math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1]) < threshold {
				brute++
			}
		}
	}
	if len(conns) != brute {
		t.Errorf("expected %d connections from brute force, got %d", brute, len(conns))
	}
}

func TestConnectCountsCandidates(t *testing.T) {
	f := newTestField()
	g := NewGrid(40, 400, 400)
	a := f.spawn(100, 100)
	b := f.spawn(300, 300)
	g.Insert(a, 100, 100)
	g.Insert(b, 300, 300)

	c := NewConnector(f.world, 40, true)
	connectAll(f, g, c, []ecs.Entity{a, b})

	if c.Candidates() != 0 {
		t.Errorf("expected no candidates for isolated particles, got %d", c.Candidates())
	}
	c.ResetCandidates()
	if c.Candidates() != 0 {
		t.Error("expected zero after reset")
	}
}
