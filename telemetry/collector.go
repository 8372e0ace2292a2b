package telemetry

// FrameSample is the per-tick input to the Collector.
type FrameSample struct {
	Tick            int32
	Particles       int
	InfluenceRadius float64
	Connections     int
	OpacitySum      float64
	Candidates      int
	PointerPresent  bool
	Regenerated     bool
}

// Collector accumulates frame samples into fixed-size tick windows.
type Collector struct {
	windowTicks int32

	windowStartTick int32
	ticks           int
	connections     int
	opacitySum      float64
	candidates      int
	particleTicks   int
	pointerTicks    int
	regenerations   int
	last            FrameSample
}

// NewCollector creates a collector producing one WindowStats every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int32(windowTicks)}
}

// Record adds one tick to the current window.
func (c *Collector) Record(s FrameSample) {
	if c.ticks == 0 {
		c.windowStartTick = s.Tick
	}
	c.ticks++
	c.connections += s.Connections
	c.opacitySum += s.OpacitySum
	c.candidates += s.Candidates
	c.particleTicks += s.Particles
	if s.PointerPresent {
		c.pointerTicks++
	}
	if s.Regenerated {
		c.regenerations++
	}
	c.last = s
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush() bool {
	return int32(c.ticks) >= c.windowTicks
}

// Flush produces stats for the current window and starts a new one.
// lengths are the connection lengths of the window's last tick; the slice is sorted in place.
func (c *Collector) Flush(lengths []float64) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   c.last.Tick,
		Ticks:           c.ticks,
		Particles:       c.last.Particles,
		InfluenceRadius: c.last.InfluenceRadius,
		Regenerations:   c.regenerations,
	}
	if c.ticks > 0 {
		stats.ConnectionsPerTick = float64(c.connections) / float64(c.ticks)
		stats.PointerPresentFrac = float64(c.pointerTicks) / float64(c.ticks)
	}
	if c.connections > 0 {
		stats.MeanOpacity = c.opacitySum / float64(c.connections)
	}
	if c.particleTicks > 0 {
		stats.CandidatesPerParticle = float64(c.candidates) / float64(c.particleTicks)
	}
	stats.LengthMean, stats.LengthStd, stats.LengthP10, stats.LengthP50, stats.LengthP90 = LengthStats(lengths)

	c.reset()
	return stats
}

func (c *Collector) reset() {
	*c = Collector{windowTicks: c.windowTicks}
}
