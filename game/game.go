package game

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/holomesh/config"
	"github.com/pthm-cable/holomesh/loop"
	"github.com/pthm-cable/holomesh/surface"
	"github.com/pthm-cable/holomesh/systems"
	"github.com/pthm-cable/holomesh/telemetry"
)

// SizeSource reports the host's current surface size and whether it changed
// since the last call.
type SizeSource func() (w, h int, changed bool)

// Options configures game initialization.
type Options struct {
	Seed      int64  // RNG seed (0 = time-based)
	RunID     string // Identifier stamped into logs and CSV rows (empty = random)
	LogStats  bool   // Log window and perf stats via slog
	OutputDir string // Directory for CSV telemetry and config snapshot (empty = disabled)
	MaxFrames int64  // Stop after N frames (0 = unlimited)

	// Resize is polled at the start of every frame. Nil means the surface
	// never changes size.
	Resize SizeSource

	// Config overrides the global config (nil = config.Cfg()).
	Config *config.Config

	// StatsCallback is called with each flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete mesh state. After Run starts, only the scheduler
// touches it.
type Game struct {
	cfg   *config.Config
	rng   *rand.Rand
	runID string

	canvas   surface.Optional
	viewport *surface.Viewport
	resize   SizeSource

	pop        *systems.Population
	links      *systems.LinkFinder
	reconciler *systems.Reconciler

	// Telemetry
	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	frames    int64
	maxFrames int64
	lastLinks int
}

// NewGameWithOptions creates a game drawing into canvas. When the canvas is
// absent the game is inert: nothing is built and Run returns immediately.
func NewGameWithOptions(canvas surface.Optional, opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	g := &Game{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(seed)),
		runID:         runID,
		canvas:        canvas,
		resize:        opts.Resize,
		links:         systems.NewLinkFinder(systems.LinkRulesFromConfig(cfg)),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(time.Duration(cfg.Telemetry.StatsWindow * float64(time.Second))),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		maxFrames:     opts.MaxFrames,
	}

	c, ok := canvas.Get()
	if !ok {
		g.viewport = surface.NewViewport(0, 0)
		return g
	}

	w, h := c.Size()
	g.viewport = surface.NewViewport(w, h)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.output = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	g.pop = systems.NewPopulation(systems.RulesFromConfig(cfg), systems.SizingFromConfig(cfg), g.rng)
	g.reconciler = systems.NewReconciler(cfg.Density.Threshold, g.viewport.Area())
	g.rebuild(telemetry.RebuildInitial, 0, 0)

	return g
}

// Run drives the game until ctx is cancelled, the clock reports the host
// closed, or MaxFrames frames have been drawn. It must be called from the
// goroutine that owns the drawing surface.
func (g *Game) Run(ctx context.Context, clock loop.FrameClock) error {
	if !g.canvas.Available() {
		slog.Info("no drawing surface, mesh is inert", "run_id", g.runID)
		return nil
	}

	if g.maxFrames > 0 {
		clock = loop.Until(clock, func() bool { return g.frames >= g.maxFrames })
	}

	s := loop.New(g, clock, frameTask)
	s.Every("reconcile", g.cfg.Derived.ReconcileInterval, reconcileTask)

	w, h := g.viewport.Size()
	slog.Info("mesh started",
		"run_id", g.runID,
		"width", w,
		"height", h,
		"particles", g.pop.Len(),
		"grid_links", g.links.UsesGrid(g.pop.Len()),
		"reconcile_interval", g.cfg.Derived.ReconcileInterval,
	)
	g.collector.Start(time.Now())

	err := s.Run(ctx)

	slog.Info("mesh stopped", "run_id", g.runID, "frames", g.frames, "reason", stopReason(err))
	return err
}

func stopReason(err error) string {
	if err != nil {
		return err.Error()
	}
	return "clock done"
}

// Unload releases output files. It is safe to call more than once.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.output = nil
}

// Frame returns the number of frames drawn.
func (g *Game) Frame() int64 {
	return g.frames
}

// RunID returns the run identifier.
func (g *Game) RunID() string {
	return g.runID
}

// Inert reports whether the game has no drawing surface.
func (g *Game) Inert() bool {
	return !g.canvas.Available()
}

// Population returns the particle population, nil when inert.
func (g *Game) Population() *systems.Population {
	return g.pop
}

// Viewport returns the surface size tracker.
func (g *Game) Viewport() *surface.Viewport {
	return g.viewport
}

// LastLinks returns how many links the last frame drew.
func (g *Game) LastLinks() int {
	return g.lastLinks
}
