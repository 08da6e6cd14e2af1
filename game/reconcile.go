package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/holomesh/systems"
	"github.com/pthm-cable/holomesh/telemetry"
)

// reconcileTask is the scheduler's fixed-period density check.
func reconcileTask(_ time.Time, g *Game) {
	g.reconcile()
}

// reconcile rebuilds the population when the surface area has drifted past
// the threshold since the last rebuild. Reports whether it rebuilt.
func (g *Game) reconcile() bool {
	if g.pop == nil {
		return false
	}
	area := g.viewport.Area()
	previous := g.reconciler.Baseline()
	if !g.reconciler.Check(area) {
		return false
	}
	g.rebuild(telemetry.RebuildDensity, previous, systems.Drift(area, previous))
	return true
}

// rebuild replaces the population for the current viewport and records it.
func (g *Game) rebuild(reason string, previousArea, drift float64) {
	w, h := g.viewport.Size()
	n := g.pop.Rebuild(w, h)
	g.collector.RecordRebuild()

	rec := telemetry.RebuildRecord{
		RunID:        g.runID,
		Frame:        g.frames,
		ElapsedSec:   g.collector.Elapsed(time.Now()).Seconds(),
		Reason:       reason,
		Width:        w,
		Height:       h,
		Particles:    n,
		PreviousArea: previousArea,
		Area:         g.pop.Area(),
		Drift:        drift,
	}
	slog.Info("population rebuilt", "run_id", g.runID, "rebuild", rec)

	if err := g.output.WriteRebuild(rec); err != nil {
		slog.Error("failed to write rebuild", "error", err)
	}
}
