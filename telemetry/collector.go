package telemetry

import "time"

// Collector accumulates per-frame samples within a wall-clock window and
// produces WindowStats.
type Collector struct {
	window time.Duration

	start       time.Time // Run start, for elapsed time
	windowStart time.Time
	frame       int64

	// Per-frame samples in the current window
	particles []float64
	links     []float64
	frameMS   []float64

	// Event counters for the current window
	respawns int
	rebuilds int
	resizes  int
}

// NewCollector creates a collector that flushes every window.
// A non-positive window flushes after every frame.
func NewCollector(window time.Duration) *Collector {
	return &Collector{window: window}
}

// Start marks the beginning of the run and of the first window.
func (c *Collector) Start(now time.Time) {
	c.start = now
	c.windowStart = now
}

// RecordFrame records one rendered frame.
func (c *Collector) RecordFrame(particles, links, respawned int, work time.Duration) {
	c.frame++
	c.particles = append(c.particles, float64(particles))
	c.links = append(c.links, float64(links))
	c.frameMS = append(c.frameMS, float64(work)/float64(time.Millisecond))
	c.respawns += respawned
}

// RecordRebuild records a population rebuild.
func (c *Collector) RecordRebuild() {
	c.rebuilds++
}

// RecordResize records a viewport size change.
func (c *Collector) RecordResize() {
	c.resizes++
}

// Frame returns the number of frames recorded since the run started.
func (c *Collector) Frame() int64 {
	return c.frame
}

// Elapsed returns the time since Start.
func (c *Collector) Elapsed(now time.Time) time.Duration {
	if c.start.IsZero() {
		return 0
	}
	return now.Sub(c.start)
}

// ShouldFlush returns true once the current window has run its course.
func (c *Collector) ShouldFlush(now time.Time) bool {
	if c.windowStart.IsZero() {
		c.Start(now)
	}
	return now.Sub(c.windowStart) >= c.window
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(now time.Time) WindowStats {
	span := now.Sub(c.windowStart)
	stats := WindowStats{
		Frame:      c.frame,
		ElapsedSec: c.Elapsed(now).Seconds(),
		Frames:     len(c.frameMS),
		Respawns:   c.respawns,
		Rebuilds:   c.rebuilds,
		Resizes:    c.resizes,
	}
	if span > 0 {
		stats.FPS = float64(stats.Frames) / span.Seconds()
	}

	stats.ParticlesMean, _ = MeanStd(c.particles)
	stats.LinksMean, _ = MeanStd(c.links)
	stats.LinksMax = Max(c.links)
	stats.FrameMSMean, stats.FrameMSStd = MeanStd(c.frameMS)
	stats.FrameMSP50, stats.FrameMSP90 = Quantiles(c.frameMS)

	c.windowStart = now
	c.particles = c.particles[:0]
	c.links = c.links[:0]
	c.frameMS = c.frameMS[:0]
	c.respawns = 0
	c.rebuilds = 0
	c.resizes = 0

	return stats
}

// Window returns the configured window length.
func (c *Collector) Window() time.Duration {
	return c.window
}
