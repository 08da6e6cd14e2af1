package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one rendered frame.
const (
	PhaseBackdrop  = "backdrop"
	PhaseParticles = "particles"
	PhaseLinks     = "links"
	PhasePresent   = "present"
	PhaseTelemetry = "telemetry"
)

// framePhases lists phases in frame order for logging and CSV export.
var framePhases = []string{PhaseBackdrop, PhaseParticles, PhaseLinks, PhasePresent, PhaseTelemetry}

// FrameSample is the timing of one frame.
type FrameSample struct {
	Work   time.Duration // Time spent inside the frame task
	Phases map[string]time.Duration
}

// PerfCollector keeps a ring of recent frame samples.
type PerfCollector struct {
	samples []FrameSample
	next    int
	filled  int

	phases     map[string]time.Duration
	frameStart time.Time
	phaseStart time.Time
	phase      string

	// Interval between consecutive frame starts
	lastStart time.Time
	interval  time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over the last size frames.
func NewPerfCollector(size int) *PerfCollector {
	if size < 1 {
		size = 60
	}
	return &PerfCollector{
		samples: make([]FrameSample, size),
		phases:  make(map[string]time.Duration),
		now:     time.Now,
	}
}

// StartFrame begins timing a frame.
func (p *PerfCollector) StartFrame() {
	now := p.now()
	if !p.lastStart.IsZero() {
		p.interval = now.Sub(p.lastStart)
	}
	p.lastStart = now
	p.frameStart = now
	p.phases = make(map[string]time.Duration, len(framePhases))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens the named one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.phase != "" {
		p.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.phase = phase
}

// EndFrame closes the running phase and stores the sample.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	if p.phase != "" {
		p.phases[p.phase] += now.Sub(p.phaseStart)
		p.phase = ""
	}

	p.samples[p.next] = FrameSample{Work: now.Sub(p.frameStart), Phases: p.phases}
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

// PerfStats summarises the collector's window.
type PerfStats struct {
	AvgWork time.Duration
	MinWork time.Duration
	MaxWork time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of AvgWork, 0..100

	// Interval between the two most recent frames and the rate it implies
	Interval time.Duration
	FPS      float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
		Interval: p.interval,
	}
	if p.interval > 0 {
		stats.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.filled == 0 {
		return stats
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i := 0; i < p.filled; i++ {
		s := p.samples[i]
		total += s.Work
		if i == 0 || s.Work < stats.MinWork {
			stats.MinWork = s.Work
		}
		stats.MaxWork = max(stats.MaxWork, s.Work)
		for name, d := range s.Phases {
			sums[name] += d
		}
	}

	n := time.Duration(p.filled)
	stats.AvgWork = total / n
	for name, sum := range sums {
		avg := sum / n
		stats.PhaseAvg[name] = avg
		if stats.AvgWork > 0 {
			stats.PhasePct[name] = float64(avg) / float64(stats.AvgWork) * 100
		}
	}
	return stats
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgWork.Microseconds()),
		slog.Int64("min_frame_us", s.MinWork.Microseconds()),
		slog.Int64("max_frame_us", s.MaxWork.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range framePhases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	RunID        string  `csv:"run_id"`
	Frame        int64   `csv:"frame"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	FPS          float64 `csv:"fps"`
	BackdropPct  float64 `csv:"backdrop_pct"`
	ParticlesPct float64 `csv:"particles_pct"`
	LinksPct     float64 `csv:"links_pct"`
	PresentPct   float64 `csv:"present_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the CSV writer.
func (s PerfStats) ToCSV(runID string, frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		RunID:        runID,
		Frame:        frame,
		AvgFrameUS:   s.AvgWork.Microseconds(),
		MinFrameUS:   s.MinWork.Microseconds(),
		MaxFrameUS:   s.MaxWork.Microseconds(),
		FPS:          s.FPS,
		BackdropPct:  s.PhasePct[PhaseBackdrop],
		ParticlesPct: s.PhasePct[PhaseParticles],
		LinksPct:     s.PhasePct[PhaseLinks],
		PresentPct:   s.PhasePct[PhasePresent],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
