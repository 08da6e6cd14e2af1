package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/holomesh/config"
	"github.com/pthm-cable/holomesh/game"
	"github.com/pthm-cable/holomesh/loop"
	"github.com/pthm-cable/holomesh/renderer"
	"github.com/pthm-cable/holomesh/surface"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without a window, drawing into memory")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
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
		RunID:     uuid.NewString(),
		LogStats:  *logStats,
		OutputDir: *outputDir,
		MaxFrames: *maxFrames,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if *headless {
		err = runHeadless(ctx, cfg, opts)
	} else {
		err = runWindow(ctx, cfg, opts)
	}
	if err != nil && ctx.Err() == nil {
		slog.Error("mesh failed", "run_id", opts.RunID, "error", err)
		os.Exit(1)
	}
}

// runHeadless draws into a recording canvas paced by a ticker.
func runHeadless(ctx context.Context, cfg *config.Config, opts game.Options) error {
	canvas := surface.NewRecorder(cfg.Screen.Width, cfg.Screen.Height, false)
	g := game.NewGameWithOptions(surface.Present(canvas), opts)
	defer g.Unload()

	slog.Info("starting headless mesh",
		"run_id", opts.RunID,
		"seed", opts.Seed,
		"max_frames", opts.MaxFrames,
		"frame_interval", cfg.Derived.FrameInterval,
	)

	clock := loop.NewTickerClock(cfg.Derived.FrameInterval)
	defer clock.Stop()

	return g.Run(ctx, clock)
}

// runWindow draws into a raylib window until it is closed.
func runWindow(ctx context.Context, cfg *config.Config, opts game.Options) error {
	win := renderer.Open(cfg)
	defer win.Close()

	opts.Resize = win.PollResize
	g := game.NewGameWithOptions(win.Surface(), opts)
	defer g.Unload()

	return g.Run(ctx, win.Clock())
}
