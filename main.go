package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plexus/config"
	"github.com/pthm-cable/plexus/game"
	"github.com/pthm-cable/plexus/renderer"
	"github.com/pthm-cable/plexus/surface"
	"github.com/pthm-cable/plexus/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	particles := flag.Int("particles", -1, "Initial particle count (-1 = use config)")
	radius := flag.Float64("radius", -1, "Initial pointer influence radius (-1 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		runHeadless(cfg, opts, *maxTicks, *particles, *radius)
		return
	}

	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Plexus")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	d := newDriver(cfg, opts, *particles, *radius)
	defer d.Stop()

	if w, h := rl.GetScreenWidth(), rl.GetScreenHeight(); w != cfg.Screen.Width || h != cfg.Screen.Height {
		d.State().NotifySurfaceResized(float64(w), float64(h))
	}

	surf := renderer.NewSurface()
	panel := ui.NewControlsPanel(10, 10, 240, cfg.Controls.MaxParticles, cfg.Controls.MaxInfluenceRadius, cfg.Controls.Visible)
	hud := ui.NewHUD()

	for !rl.WindowShouldClose() {
		ui.HandleInput(d, panel)

		rl.BeginDrawing()
		if err := d.Tick(surf); err != nil {
			slog.Warn("frame dropped", "error", err)
		}
		panel.Draw(d.State())
		hud.Draw(ui.HUDData{
			Particles:   d.State().Count(),
			Connections: len(d.Connections()),
			Radius:      d.State().Params().InfluenceRadius,
			Tick:        d.Ticks(),
			FPS:         rl.GetFPS(),
			TickUS:      d.PerfStats().AvgTickDuration.Microseconds(),
			Paused:      d.Paused(),
		}, int32(rl.GetScreenHeight()))
		rl.EndDrawing()

		if *maxTicks > 0 && int(d.Ticks()) >= *maxTicks {
			slog.Info("max ticks reached", "tick", d.Ticks())
			break
		}
	}
}

// runHeadless ticks the field onto a counting surface, no raylib needed.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks, particles int, radius float64) {
	d := newDriver(cfg, opts, particles, radius)
	defer d.Stop()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"particles", d.State().Params().ParticleCount,
		"stats_window", cfg.Telemetry.StatsWindow,
		"max_ticks", maxTicks,
	)

	rec := surface.NewRecorder(true)
	for {
		if err := d.Tick(rec); err != nil {
			if errors.Is(err, game.ErrStopped) {
				return
			}
			slog.Warn("frame dropped", "error", err)
		}

		if maxTicks > 0 && int(d.Ticks()) >= maxTicks {
			slog.Info("max ticks reached", "tick", d.Ticks())
			return
		}
	}
}

func newDriver(cfg *config.Config, opts game.Options, particles int, radius float64) *game.Driver {
	d, err := game.NewDriver(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	if particles >= 0 {
		d.State().SetParticleCount(particles)
	}
	if radius >= 0 {
		d.State().SetInfluenceRadius(radius)
	}
	return d
}
