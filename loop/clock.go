package loop

import "time"

// TickerClock paces frames with a time.Ticker at a fixed interval. It is the
// frame clock for runs without a display.
type TickerClock struct {
	ticker *time.Ticker
	done   bool
}

// NewTickerClock creates a clock delivering one frame per interval.
func NewTickerClock(interval time.Duration) *TickerClock {
	return &TickerClock{ticker: time.NewTicker(interval)}
}

// Next implements FrameClock.
func (c *TickerClock) Next() <-chan time.Time {
	return c.ticker.C
}

// Done implements FrameClock.
func (c *TickerClock) Done() bool {
	return c.done
}

// Stop releases the ticker and marks the clock done.
func (c *TickerClock) Stop() {
	c.ticker.Stop()
	c.done = true
}

// ReadyClock delivers the next frame immediately. Hosts whose drawing call
// already blocks until the display is ready (vsync or a target FPS) use it,
// wiring Done to their close signal.
type ReadyClock struct {
	closed func() bool
	ch     chan time.Time
}

// NewReadyClock creates a clock that is always ready and reports done when
// closed returns true.
func NewReadyClock(closed func() bool) *ReadyClock {
	return &ReadyClock{closed: closed, ch: make(chan time.Time, 1)}
}

// Next implements FrameClock.
func (c *ReadyClock) Next() <-chan time.Time {
	c.ch <- time.Now()
	return c.ch
}

// Done implements FrameClock.
func (c *ReadyClock) Done() bool {
	return c.closed()
}

type untilClock struct {
	FrameClock
	stop func() bool
}

// Until wraps clock so that it also reports done once stop returns true.
func Until(clock FrameClock, stop func() bool) FrameClock {
	return untilClock{FrameClock: clock, stop: stop}
}

func (c untilClock) Done() bool {
	return c.FrameClock.Done() || c.stop()
}
