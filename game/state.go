// Package game owns the particle field state and the per-frame driver.
package game

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/plexus/components"
	"github.com/pthm-cable/plexus/config"
	"github.com/pthm-cable/plexus/systems"
)

// Params are the host-adjustable simulation parameters.
type Params struct {
	ParticleCount   int
	InfluenceRadius float64
	ConnectDistance float64
	Width, Height   float64
}

// Particle is a read-only copy of one particle's components.
type Particle struct {
	Entity   ecs.Entity
	Position components.Position
	Anchor   components.Anchor
	Body     components.Body
}

// State is the complete simulation state: the particle world, the grid
// built by the last step, pointer and parameters. Host setters only record
// values; structural changes are applied by ApplyPending.
type State struct {
	cfg *config.Config
	rng *rand.Rand

	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Anchor, components.Body]
	filter *ecs.Filter3[components.Position, components.Anchor, components.Body]

	connector *systems.Connector
	grid      *systems.Grid

	params  Params
	pointer systems.Pointer
	pending bool
	count   int
}

// NewState creates the state and populates the initial particle set.
func NewState(cfg *config.Config, rng *rand.Rand) *State {
	s := &State{
		cfg: cfg,
		rng: rng,
		params: Params{
			ParticleCount:   cfg.Field.ParticleCount,
			InfluenceRadius: cfg.Pointer.InfluenceRadius,
			ConnectDistance: cfg.Field.ConnectDistance,
			Width:           cfg.Derived.ScreenW,
			Height:          cfg.Derived.ScreenH,
		},
	}
	s.regenerate()
	return s
}

// regenerate discards the world and spawns a fresh particle set.
func (s *State) regenerate() {
	s.world = ecs.NewWorld()
	s.mapper = ecs.NewMap3[components.Position, components.Anchor, components.Body](s.world)
	s.filter = ecs.NewFilter3[components.Position, components.Anchor, components.Body](s.world)
	s.connector = systems.NewConnector(s.world, s.params.ConnectDistance, s.cfg.Field.DedupePairs)
	s.count = 0

	for i := 0; i < s.params.ParticleCount; i++ {
		s.Spawn()
	}
	s.grid = s.index()
	s.pending = false
}

// ApplyPending regenerates the particle set if a count, reset or resize
// change arrived since the last tick. Reports whether it did.
func (s *State) ApplyPending() bool {
	if !s.pending {
		return false
	}
	s.regenerate()
	return true
}

// Spawn creates a particle at a uniformly random surface position.
func (s *State) Spawn() ecs.Entity {
	x := s.rng.Float64() * s.params.Width
	y := s.rng.Float64() * s.params.Height
	return s.SpawnAt(x, y)
}

// SpawnAt creates a particle anchored at (x, y).
func (s *State) SpawnAt(x, y float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	anchor := components.Anchor{X: x, Y: y}
	body := components.Body{
		Index:   s.count,
		Radius:  s.cfg.Field.ParticleRadius,
		Density: s.cfg.Field.DensityMin + s.rng.Float64()*s.cfg.Derived.DensitySpan,
	}
	s.count++
	return s.mapper.NewEntity(&pos, &anchor, &body)
}

// Step advances every particle one frame in insertion order and returns the
// grid built from their new positions. The grid replaces the previous one.
func (s *State) Step() *systems.Grid {
	grid := systems.NewGrid(s.params.ConnectDistance, s.params.Width, s.params.Height)
	bounds := systems.Bounds{Width: s.params.Width, Height: s.params.Height}
	ptr := s.pointer
	ptr.Radius = s.params.InfluenceRadius
	ease := s.cfg.Field.EaseDivisor

	query := s.filter.Query()
	done := false
	defer func() {
		// A panic mid-iteration would leave the world locked
		if !done {
			query.Close()
		}
	}()
	for query.Next() {
		pos, anchor, body := query.Get()
		systems.StepParticle(pos, *anchor, *body, ptr, bounds, ease)
		grid.Insert(query.Entity(), pos.X, pos.Y)
	}
	done = true

	s.grid = grid
	return grid
}

// Advance applies pending changes and runs n steps.
func (s *State) Advance(n int) {
	s.ApplyPending()
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// index builds a grid from current positions without moving anything.
func (s *State) index() *systems.Grid {
	grid := systems.NewGrid(s.params.ConnectDistance, s.params.Width, s.params.Height)
	query := s.filter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		grid.Insert(query.Entity(), pos.X, pos.Y)
	}
	return grid
}

// Connections appends the proximity connections for the current grid to dst.
func (s *State) Connections(dst []systems.Connection) []systems.Connection {
	s.connector.ResetCandidates()
	query := s.filter.Query()
	done := false
	defer func() {
		if !done {
			query.Close()
		}
	}()
	for query.Next() {
		pos, _, body := query.Get()
		dst = s.connector.ConnectInto(dst, s.grid, query.Entity(), *pos, *body)
	}
	done = true
	return dst
}

// Candidates returns the neighbour entries examined by the last Connections call.
func (s *State) Candidates() int { return s.connector.Candidates() }

// Particles appends a copy of every particle to dst in insertion order.
func (s *State) Particles(dst []Particle) []Particle {
	query := s.filter.Query()
	for query.Next() {
		pos, anchor, body := query.Get()
		dst = append(dst, Particle{Entity: query.Entity(), Position: *pos, Anchor: *anchor, Body: *body})
	}
	return dst
}

// Count returns the number of live particles.
func (s *State) Count() int { return s.count }

// Params returns the current parameters.
func (s *State) Params() Params { return s.params }

// Pointer returns the pointer state with the current influence radius.
func (s *State) Pointer() systems.Pointer {
	p := s.pointer
	p.Radius = s.params.InfluenceRadius
	return p
}

// Grid returns the grid produced by the last step or regeneration.
func (s *State) Grid() *systems.Grid { return s.grid }

// Pending reports whether a regeneration is queued for the next tick.
func (s *State) Pending() bool { return s.pending }

// SetParticleCount queues a regeneration with n particles. Negative n is clamped to 0.
func (s *State) SetParticleCount(n int) {
	if n < 0 {
		n = 0
	}
	s.params.ParticleCount = n
	s.pending = true
}

// SetInfluenceRadius changes the pointer influence radius for future steps.
// Negative or NaN values are clamped to 0, +Inf to the control maximum.
func (s *State) SetInfluenceRadius(r float64) {
	switch {
	case !(r > 0):
		r = 0
	case math.IsInf(r, 1):
		r = s.cfg.Controls.MaxInfluenceRadius
	}
	s.params.InfluenceRadius = r
}

// SetPointer reports the pointer at (x, y). Non-finite coordinates count as absent.
func (s *State) SetPointer(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		s.ClearPointer()
		return
	}
	s.pointer.X, s.pointer.Y = x, y
	s.pointer.Present = true
}

// ClearPointer reports the pointer as absent.
func (s *State) ClearPointer() {
	s.pointer.Present = false
}

// ResetToDefaults restores the configured count and radius and queues a regeneration.
func (s *State) ResetToDefaults() {
	s.params.ParticleCount = s.cfg.Field.ParticleCount
	s.params.InfluenceRadius = s.cfg.Pointer.InfluenceRadius
	s.pending = true
}

// NotifySurfaceResized updates the surface size and queues a regeneration.
func (s *State) NotifySurfaceResized(w, h float64) {
	if !(w > 0) {
		w = 0
	}
	if !(h > 0) {
		h = 0
	}
	s.params.Width, s.params.Height = w, h
	s.pending = true
}
