// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds all field configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Controls  ControlsConfig  `yaml:"controls"`
	Theme     ThemeConfig     `yaml:"theme"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	Resizable bool `yaml:"resizable"`
}

// FieldConfig holds particle and connection parameters.
type FieldConfig struct {
	ParticleCount   int     `yaml:"particle_count"`   // Default particle count (reset target)
	ConnectDistance float64 `yaml:"connect_distance"` // Connection threshold, also grid cell size
	ParticleRadius  float64 `yaml:"particle_radius"`  // Visual radius and clamp margin
	DensityMin      float64 `yaml:"density_min"`      // Density drawn from [min, max)
	DensityMax      float64 `yaml:"density_max"`
	EaseDivisor     float64 `yaml:"ease_divisor"` // Anchor return: offset -= offset / divisor
	LineWidth       float64 `yaml:"line_width"`
	DedupePairs     bool    `yaml:"dedupe_pairs"` // Draw each connected pair once
}

// PointerConfig holds pointer influence parameters.
type PointerConfig struct {
	InfluenceRadius float64 `yaml:"influence_radius"` // Default radius (reset target)
}

// ControlsConfig holds control panel ranges.
type ControlsConfig struct {
	Visible            bool    `yaml:"visible"`
	MaxParticles       int     `yaml:"max_particles"`
	MaxInfluenceRadius float64 `yaml:"max_influence_radius"`
}

// ThemeConfig holds hex colours for the field.
type ThemeConfig struct {
	Background string `yaml:"background"`
	Particle   string `yaml:"particle"`
	Line       string `yaml:"line"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW     float64 // Screen.Width as float64
	ScreenH     float64 // Screen.Height as float64
	DensitySpan float64 // Field.DensityMax - Field.DensityMin
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects values the field cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width < 0 || c.Screen.Height < 0:
		return fmt.Errorf("%w: negative screen size %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case !(c.Field.ConnectDistance > 0) || math.IsInf(c.Field.ConnectDistance, 0):
		return fmt.Errorf("%w: connect_distance must be positive, got %v", ErrInvalid, c.Field.ConnectDistance)
	case c.Field.ParticleRadius < 0:
		return fmt.Errorf("%w: particle_radius must be non-negative, got %v", ErrInvalid, c.Field.ParticleRadius)
	case c.Field.DensityMax < c.Field.DensityMin:
		return fmt.Errorf("%w: density range [%v, %v) is inverted", ErrInvalid, c.Field.DensityMin, c.Field.DensityMax)
	case !(c.Field.EaseDivisor >= 1):
		return fmt.Errorf("%w: ease_divisor must be >= 1, got %v", ErrInvalid, c.Field.EaseDivisor)
	case c.Field.ParticleCount < 0:
		return fmt.Errorf("%w: particle_count must be non-negative, got %d", ErrInvalid, c.Field.ParticleCount)
	case c.Pointer.InfluenceRadius < 0:
		return fmt.Errorf("%w: influence_radius must be non-negative, got %v", ErrInvalid, c.Pointer.InfluenceRadius)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)
	c.Derived.DensitySpan = c.Field.DensityMax - c.Field.DensityMin

	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 60
	}
	if c.Telemetry.PerfCollectorWindow < 1 {
		c.Telemetry.PerfCollectorWindow = 60
	}
	if c.Controls.MaxParticles < c.Field.ParticleCount {
		c.Controls.MaxParticles = c.Field.ParticleCount
	}
	if c.Controls.MaxInfluenceRadius < c.Pointer.InfluenceRadius {
		c.Controls.MaxInfluenceRadius = c.Pointer.InfluenceRadius
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
