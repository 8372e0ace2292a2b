// Package main sweeps the particle field across particle counts headlessly
// and reports tick cost per count.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/plexus/config"
	"github.com/pthm-cable/plexus/game"
	"github.com/pthm-cable/plexus/surface"
	"github.com/pthm-cable/plexus/telemetry"
)

// SweepRow is one particle count's measurements.
type SweepRow struct {
	Particles             int     `csv:"particles"`
	Ticks                 int     `csv:"ticks"`
	MeanTickUS            float64 `csv:"mean_tick_us"`
	P50TickUS             float64 `csv:"p50_tick_us"`
	P90TickUS             float64 `csv:"p90_tick_us"`
	LinesPerTick          float64 `csv:"lines_per_tick"`
	CandidatesPerParticle float64 `csv:"candidates_per_particle"`
	GridCols              int     `csv:"grid_cols"`
	GridRows              int     `csv:"grid_rows"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	countsFlag := flag.String("counts", "250,500,1000,2000,3000,4000", "Comma-separated particle counts")
	ticks := flag.Int("ticks", 300, "Measured ticks per count")
	warmup := flag.Int("warmup", 30, "Unmeasured ticks before measuring")
	seed := flag.Int64("seed", 42, "RNG seed")
	movePointer := flag.Bool("pointer", true, "Sweep a pointer around the surface centre")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	counts, err := parseCounts(*countsFlag)
	if err != nil {
		log.Fatalf("bad --counts: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	startTime := time.Now()
	rows := make([]SweepRow, 0, len(counts))
	for i, n := range counts {
		row, err := runCount(baseCfg, n, *warmup, *ticks, *seed, *movePointer)
		if err != nil {
			log.Fatalf("count %d: %v", n, err)
		}
		rows = append(rows, row)
		fmt.Printf("Count %d/%d: particles=%d mean=%.0fus p90=%.0fus lines=%.0f | elapsed: %s\n",
			i+1, len(counts), n, row.MeanTickUS, row.P90TickUS, row.LinesPerTick,
			formatDuration(time.Since(startTime)))
	}

	sweepPath := filepath.Join(*outputDir, "sweep.csv")
	if err := telemetry.WriteCSV(sweepPath, rows); err != nil {
		log.Fatalf("failed to write sweep: %v", err)
	}
	fmt.Printf("\nSweep saved to: %s\n", sweepPath)

	if err := baseCfg.WriteYAML(filepath.Join(*outputDir, "config.yaml")); err != nil {
		log.Printf("failed to write config: %v", err)
	}

	if len(rows) < 3 {
		return
	}
	particles := make([]int, len(rows))
	means := make([]float64, len(rows))
	for i, r := range rows {
		particles[i] = r.Particles
		means[i] = r.MeanTickUS
	}
	model, err := FitCostModel(particles, means)
	if err != nil {
		log.Printf("cost model fit failed: %v", err)
		return
	}
	budget := 1e6 / float64(baseCfg.Screen.TargetFPS)
	fmt.Printf("Cost model: %.1f + %.1f·k + %.2f·k² us (k = particles/1000)\n", model.A, model.B, model.C)
	if maxN := model.MaxParticles(budget); maxN >= 0 {
		fmt.Printf("Estimated max particles at %d fps: %d\n", baseCfg.Screen.TargetFPS, maxN)
	} else {
		fmt.Printf("Model does not reach the %d fps budget\n", baseCfg.Screen.TargetFPS)
	}
}

func parseCounts(s string) ([]int, error) {
	var counts []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative count %d", n)
		}
		counts = append(counts, n)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("no counts in %q", s)
	}
	return counts, nil
}

// runCount drives one field of n particles and measures its ticks.
func runCount(base *config.Config, n, warmup, ticks int, seed int64, movePointer bool) (SweepRow, error) {
	cfg := *base
	cfg.Field.ParticleCount = n

	d, err := game.NewDriver(&cfg, game.Options{Seed: seed})
	if err != nil {
		return SweepRow{}, err
	}
	defer d.Stop()

	s := d.State()
	rec := surface.NewRecorder(true)
	cx, cy := cfg.Derived.ScreenW/2, cfg.Derived.ScreenH/2
	orbit := math.Min(cx, cy) / 2

	durations := make([]float64, 0, ticks)
	var lines, candidates int
	for i := 0; i < warmup+ticks; i++ {
		if movePointer {
			a := float64(i) * 0.05
			s.SetPointer(cx+orbit*math.Cos(a), cy+orbit*math.Sin(a))
		}

		start := time.Now()
		if err := d.Tick(rec); err != nil {
			return SweepRow{}, err
		}
		elapsed := time.Since(start)

		if i < warmup {
			continue
		}
		durations = append(durations, float64(elapsed.Nanoseconds())/1e3)
		lines += rec.Lines()
		candidates += s.Candidates()
	}

	row := SweepRow{
		Particles: n,
		Ticks:     ticks,
		GridCols:  s.Grid().Cols(),
		GridRows:  s.Grid().Rows(),
	}
	if ticks > 0 {
		row.MeanTickUS = stat.Mean(durations, nil)
		sort.Float64s(durations)
		row.P50TickUS = stat.Quantile(0.5, stat.Empirical, durations, nil)
		row.P90TickUS = stat.Quantile(0.9, stat.Empirical, durations, nil)
		row.LinesPerTick = float64(lines) / float64(ticks)
		if n > 0 {
			row.CandidatesPerParticle = float64(candidates) / float64(ticks*n)
		}
	}
	return row, nil
}
