package game

import (
	"log/slog"
	"math"
	"time"

	"github.com/pthm-cable/holomesh/surface"
	"github.com/pthm-cable/holomesh/systems"
	"github.com/pthm-cable/holomesh/telemetry"
)

// frameTask is the scheduler's per-frame entry point.
func frameTask(now time.Time, g *Game) {
	g.drawFrame(now)
}

// drawFrame advances and draws one frame: backdrop, particles, then links.
func (g *Game) drawFrame(now time.Time) {
	canvas, ok := g.canvas.Get()
	if !ok {
		return
	}
	start := time.Now()
	g.perf.StartFrame()

	g.pollResize()
	w, h := g.viewport.Size()
	cfg := g.cfg

	framer, framed := canvas.(surface.Framer)
	if framed {
		framer.BeginFrame()
	}

	g.perf.StartPhase(telemetry.PhaseBackdrop)
	canvas.Clear()
	canvas.FillRadialGradient(g.backdrop(w, h))

	g.perf.StartPhase(telemetry.PhaseParticles)
	bounds := systems.Bounds{W: float64(w), H: float64(h)}
	color := cfg.Particles.Color
	respawned := g.pop.Advance(bounds, func(p systems.Particle) {
		canvas.FillCircle(p.Pos.X, p.Pos.Y, p.Look.Size, surface.PaintOf(color, p.Look.Alpha))
	})

	g.perf.StartPhase(telemetry.PhaseLinks)
	points := g.pop.Points()
	width := cfg.Links.Width
	linkColor := cfg.Links.Color
	g.lastLinks = g.links.Find(points, func(l systems.Link) {
		a, b := points[l.I], points[l.J]
		canvas.StrokeLine(a.X, a.Y, b.X, b.Y, width, surface.PaintOf(linkColor, l.Alpha))
	})

	g.perf.StartPhase(telemetry.PhasePresent)
	if framed {
		framer.EndFrame()
	}

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.frames++
	g.collector.RecordFrame(g.pop.Len(), g.lastLinks, respawned, time.Since(start))
	g.flushTelemetry(now)

	g.perf.EndFrame()
}

// backdrop returns the radial gradient covering a w×h surface.
func (g *Game) backdrop(w, h int) surface.RadialGradient {
	b := g.cfg.Backdrop
	fw, fh := float64(w), float64(h)
	return surface.RadialGradient{
		W:      fw,
		H:      fh,
		InnerX: b.InnerX * fw,
		InnerY: b.InnerY * fh,
		InnerR: 0,
		OuterX: b.OuterX * fw,
		OuterY: b.OuterY * fh,
		OuterR: math.Max(fw, fh),
		Inner:  surface.PaintOf(b.Color, b.InnerAlpha),
		Outer:  surface.PaintOf(b.Color, b.OuterAlpha),
	}
}

// pollResize applies a pending host resize to the viewport.
func (g *Game) pollResize() {
	if g.resize == nil {
		return
	}
	if w, h, changed := g.resize(); changed {
		g.Resize(w, h)
	}
}

// Resize sets the viewport to the host's inner size. The population is left
// alone; the density check decides whether to rebuild.
func (g *Game) Resize(w, h int) {
	if !g.viewport.Resize(w, h) {
		return
	}
	g.collector.RecordResize()
	w, h = g.viewport.Size()
	slog.Info("viewport resized", "run_id", g.runID, "width", w, "height", h, "frame", g.frames)
}
