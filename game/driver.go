package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/plexus/config"
	"github.com/pthm-cable/plexus/surface"
	"github.com/pthm-cable/plexus/systems"
	"github.com/pthm-cable/plexus/telemetry"
)

var (
	// ErrStopped is returned by Tick after Stop.
	ErrStopped = errors.New("driver stopped")
	// ErrFrame wraps a failure recovered inside a tick.
	ErrFrame = errors.New("frame failed")
)

// RunState is the frame driver state.
type RunState uint8

const (
	Running RunState = iota
	Stopped
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("RunState(%d)", uint8(s))
}

// Options configures a Driver.
type Options struct {
	Seed      int64
	LogStats  bool   // log window and perf stats via slog
	OutputDir string // CSV and config output; empty disables

	// OnWindow is called with each completed stats window.
	OnWindow func(telemetry.WindowStats)
}

// Driver runs the per-frame loop: apply host changes, clear, step, draw
// particles, connect and draw lines, record telemetry. Scheduling belongs
// to the host, which calls Tick once per frame.
type Driver struct {
	cfg   *config.Config
	sim   *State
	theme Theme
	opts  Options

	run    RunState
	paused bool
	tick   int32

	particles []Particle
	conns     []systems.Connection
	lengths   []float64

	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	regenerated   bool
}

// NewDriver populates the particle set and returns a running driver.
func NewDriver(cfg *config.Config, opts Options) (*Driver, error) {
	theme, err := NewTheme(cfg.Theme)
	if err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	d := &Driver{
		cfg:           cfg,
		sim:           NewState(cfg, rand.New(rand.NewSource(opts.Seed))),
		theme:         theme,
		opts:          opts,
		run:           Running,
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		outputManager: om,
		regenerated:   true,
	}
	return d, nil
}

// State returns the simulation state for host input.
func (d *Driver) State() *State { return d.sim }

// Tick runs one frame onto s. A panic inside the frame is recovered and
// returned wrapped in ErrFrame; the particle set is kept for the next tick.
func (d *Driver) Tick(s surface.Surface) (err error) {
	if d.run == Stopped {
		return ErrStopped
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: tick %d: %v", ErrFrame, d.tick, r)
			slog.Error("frame failed", "tick", d.tick, "panic", r)
			d.tick++
		}
	}()

	d.perf.StartTick()

	d.perf.StartPhase(telemetry.PhaseApply)
	if d.sim.ApplyPending() {
		d.regenerated = true
	}
	s.Clear(d.theme.Background)

	if !d.paused {
		d.perf.StartPhase(telemetry.PhaseStep)
		d.sim.Step()
	}

	d.perf.StartPhase(telemetry.PhaseParticles)
	d.drawParticles(s)

	d.perf.StartPhase(telemetry.PhaseConnect)
	d.conns = d.sim.Connections(d.conns[:0])
	d.drawConnections(s, d.conns)

	d.perf.StartPhase(telemetry.PhaseTelemetry)
	d.record()

	d.perf.EndTick()
	d.perf.RecordFrame()
	d.tick++
	return nil
}

// record adds this tick to the stats window and flushes completed windows.
func (d *Driver) record() {
	var opacity float64
	for _, c := range d.conns {
		opacity += c.Opacity
	}
	params := d.sim.Params()
	d.collector.Record(telemetry.FrameSample{
		Tick:            d.tick,
		Particles:       d.sim.Count(),
		InfluenceRadius: params.InfluenceRadius,
		Connections:     len(d.conns),
		OpacitySum:      opacity,
		Candidates:      d.sim.Candidates(),
		PointerPresent:  d.sim.Pointer().Present,
		Regenerated:     d.regenerated,
	})
	d.regenerated = false

	if !d.collector.ShouldFlush() {
		return
	}
	d.flushTelemetry()
}

func (d *Driver) flushTelemetry() {
	d.lengths = d.lengths[:0]
	for _, c := range d.conns {
		d.lengths = append(d.lengths, c.Distance)
	}
	stats := d.collector.Flush(d.lengths)
	perfStats := d.perf.Stats()

	if d.opts.OnWindow != nil {
		d.opts.OnWindow(stats)
	}

	if d.opts.LogStats {
		slog.Info("field", "stats", stats)
		slog.Info("perf", "stats", perfStats)
	}

	if err := d.outputManager.WriteWindow(stats); err != nil {
		slog.Error("failed to write field stats", "error", err)
	}
	if err := d.outputManager.WritePerf(perfStats, stats.WindowEndTick, stats.Particles); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Stop moves the driver to Stopped. Further ticks return ErrStopped.
func (d *Driver) Stop() {
	if d.run == Stopped {
		return
	}
	d.run = Stopped
	if err := d.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// RunState returns the driver state.
func (d *Driver) RunState() RunState { return d.run }

// SetPaused freezes particle motion; frames are still drawn.
func (d *Driver) SetPaused(p bool) { d.paused = p }

// Paused reports whether motion is frozen.
func (d *Driver) Paused() bool { return d.paused }

// Ticks returns the number of ticks run.
func (d *Driver) Ticks() int32 { return d.tick }

// Connections returns the connections drawn by the last tick.
func (d *Driver) Connections() []systems.Connection { return d.conns }

// Theme returns the resolved colours.
func (d *Driver) Theme() Theme { return d.theme }

// PerfStats returns the rolling performance stats.
func (d *Driver) PerfStats() telemetry.PerfStats { return d.perf.Stats() }
