package game

import (
	"log/slog"
	"time"
)

// flushTelemetry emits the stats window once it has elapsed.
func (g *Game) flushTelemetry(now time.Time) {
	if !g.collector.ShouldFlush(now) {
		return
	}

	stats := g.collector.Flush(now)
	stats.RunID = g.runID
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.output.WriteWindow(stats); err != nil {
		slog.Error("failed to write window stats", "error", err)
	}
	if err := g.output.WritePerf(perfStats.ToCSV(g.runID, stats.Frame)); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
