// Package config provides configuration loading and access for the mesh engine.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Particles ParticlesConfig `yaml:"particles"`
	Links     LinksConfig     `yaml:"links"`
	Backdrop  BackdropConfig  `yaml:"backdrop"`
	Density   DensityConfig   `yaml:"density"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// RGB is an opaque colour triple. Alpha is supplied separately per draw call.
type RGB [3]uint8

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Resizable  bool   `yaml:"resizable"`
	Title      string `yaml:"title"`
	Background RGB    `yaml:"background"` // Colour the surface is cleared to
}

// ParticlesConfig holds particle sizing and randomisation ranges.
// Ranges are half-open: [min, max).
type ParticlesConfig struct {
	MinCount        int     `yaml:"min_count"`         // Population floor
	AreaPerParticle float64 `yaml:"area_per_particle"` // Surface px² per particle above the floor
	EdgeMargin      float64 `yaml:"edge_margin"`       // Distance past the edge before respawn
	MaxSpeed        float64 `yaml:"max_speed"`         // Velocity per axis in [-max, max)
	SizeMin         float64 `yaml:"size_min"`
	SizeMax         float64 `yaml:"size_max"`
	AlphaMin        float64 `yaml:"alpha_min"`
	AlphaMax        float64 `yaml:"alpha_max"`
	Color           RGB     `yaml:"color"`
}

// LinksConfig holds proximity line parameters.
type LinksConfig struct {
	Distance      float64 `yaml:"distance"`       // Pairs closer than this are linked
	MaxAlpha      float64 `yaml:"max_alpha"`      // Line alpha at zero distance
	Width         float64 `yaml:"width"`          // Stroke width
	Color         RGB     `yaml:"color"`
	GridThreshold int     `yaml:"grid_threshold"` // Populations above this use the spatial grid (0 = always all-pairs)
}

// BackdropConfig holds the radial gradient painted behind the particles.
// Centres are fractions of the surface size; the outer radius is max(W, H).
type BackdropConfig struct {
	InnerX     float64 `yaml:"inner_x"`
	InnerY     float64 `yaml:"inner_y"`
	OuterX     float64 `yaml:"outer_x"`
	OuterY     float64 `yaml:"outer_y"`
	Color      RGB     `yaml:"color"`
	InnerAlpha float64 `yaml:"inner_alpha"`
	OuterAlpha float64 `yaml:"outer_alpha"`
}

// DensityConfig holds population reconciliation parameters.
type DensityConfig struct {
	IntervalMS int     `yaml:"interval_ms"` // Period of the area check
	Threshold  float64 `yaml:"threshold"`   // Relative area drift that triggers a rebuild
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Frames averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ReconcileInterval time.Duration // Density.IntervalMS as a duration
	FrameInterval     time.Duration // 1s / Screen.TargetFPS
	LinkDistanceSq    float64       // Links.Distance squared
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

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
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
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports the first setting that would make the engine misbehave.
func (c *Config) Validate() error {
	var errs []error

	p := c.Particles
	if p.MinCount < 1 {
		errs = append(errs, fmt.Errorf("particles.min_count must be >= 1, got %d", p.MinCount))
	}
	if p.AreaPerParticle <= 0 {
		errs = append(errs, fmt.Errorf("particles.area_per_particle must be > 0, got %g", p.AreaPerParticle))
	}
	if p.EdgeMargin < 0 {
		errs = append(errs, fmt.Errorf("particles.edge_margin must be >= 0, got %g", p.EdgeMargin))
	}
	if p.MaxSpeed < 0 {
		errs = append(errs, fmt.Errorf("particles.max_speed must be >= 0, got %g", p.MaxSpeed))
	}
	if p.SizeMin <= 0 || p.SizeMax < p.SizeMin {
		errs = append(errs, fmt.Errorf("particles size range [%g, %g) is invalid", p.SizeMin, p.SizeMax))
	}
	if p.AlphaMin < 0 || p.AlphaMax > 1 || p.AlphaMax < p.AlphaMin {
		errs = append(errs, fmt.Errorf("particles alpha range [%g, %g) is invalid", p.AlphaMin, p.AlphaMax))
	}

	if c.Links.Distance <= 0 {
		errs = append(errs, fmt.Errorf("links.distance must be > 0, got %g", c.Links.Distance))
	}
	if c.Links.MaxAlpha < 0 || c.Links.MaxAlpha > 1 {
		errs = append(errs, fmt.Errorf("links.max_alpha must be in [0, 1], got %g", c.Links.MaxAlpha))
	}
	if c.Links.GridThreshold < 0 {
		errs = append(errs, fmt.Errorf("links.grid_threshold must be >= 0, got %d", c.Links.GridThreshold))
	}

	if c.Density.IntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("density.interval_ms must be > 0, got %d", c.Density.IntervalMS))
	}
	if c.Density.Threshold < 0 {
		errs = append(errs, fmt.Errorf("density.threshold must be >= 0, got %g", c.Density.Threshold))
	}

	if c.Screen.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("screen.target_fps must be > 0, got %d", c.Screen.TargetFPS))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ReconcileInterval = time.Duration(c.Density.IntervalMS) * time.Millisecond
	c.Derived.FrameInterval = time.Second / time.Duration(c.Screen.TargetFPS)
	c.Derived.LinkDistanceSq = c.Links.Distance * c.Links.Distance
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
