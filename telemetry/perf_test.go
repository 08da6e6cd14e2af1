package telemetry

import (
	"testing"
	"time"
)

// fakeNow returns a fixed clock and a function that advances it.
func fakeNow(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestPerfCollector_PhaseTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	now, advance := fakeNow(time.Unix(0, 0))
	pc.now = now

	for i := 0; i < 4; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseBackdrop)
		advance(100 * time.Microsecond)
		pc.StartPhase(PhaseLinks)
		advance(300 * time.Microsecond)
		pc.EndFrame()
		advance(time.Second/60 - 400*time.Microsecond)
	}

	stats := pc.Stats()

	if stats.AvgWork != 400*time.Microsecond {
		t.Errorf("expected 400us average frame, got %s", stats.AvgWork)
	}
	if stats.PhaseAvg[PhaseLinks] != 300*time.Microsecond {
		t.Errorf("expected 300us links phase, got %s", stats.PhaseAvg[PhaseLinks])
	}
	if pct := stats.PhasePct[PhaseLinks]; pct < 74.9 || pct > 75.1 {
		t.Errorf("expected links at 75%%, got %.2f", pct)
	}
	if stats.FPS < 59 || stats.FPS > 61 {
		t.Errorf("expected ~60 fps from frame interval, got %.2f", stats.FPS)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)
	now, advance := fakeNow(time.Unix(0, 0))
	pc.now = now

	// Three slow frames followed by three fast ones; only the fast ones remain
	for i := 0; i < 6; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseParticles)
		if i < 3 {
			advance(10 * time.Millisecond)
		} else {
			advance(time.Millisecond)
		}
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.MaxWork != time.Millisecond {
		t.Errorf("expected window to hold only fast frames, max=%s", stats.MaxWork)
	}
	if stats.MinWork != time.Millisecond {
		t.Errorf("expected min 1ms, got %s", stats.MinWork)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgWork != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if stats.PhasePct == nil {
		t.Error("expected initialised phase map")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgWork:  2 * time.Millisecond,
		PhasePct: map[string]float64{PhaseLinks: 60, PhaseParticles: 30},
	}
	row := stats.ToCSV("run", 120)
	if row.AvgFrameUS != 2000 || row.LinksPct != 60 || row.ParticlesPct != 30 || row.Frame != 120 {
		t.Errorf("unexpected csv row %+v", row)
	}
}
