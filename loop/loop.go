// Package loop runs the recurring work of the mesh: a variable-rate frame
// task and fixed-rate periodic tasks, all on a single goroutine.
package loop

import (
	"context"
	"time"
)

// FrameClock is the host's "next frame" primitive.
type FrameClock interface {
	// Next returns a channel that delivers once when the next frame may be
	// drawn. It is called again after every frame.
	Next() <-chan time.Time
	// Done reports whether the host has been torn down.
	Done() bool
}

// Task is a unit of recurring work. It receives the state owned by the
// scheduler and the time the task was triggered.
type Task[S any] func(now time.Time, state S)

type periodic[S any] struct {
	name   string
	period time.Duration
	run    Task[S]
}

// Scheduler owns a state value and hands it to its tasks one at a time.
// Nothing outside the scheduler sees the state once Run has started, so
// tasks never observe concurrent mutation and need no locks.
type Scheduler[S any] struct {
	state    S
	clock    FrameClock
	frame    Task[S]
	periodic []periodic[S]
}

// New creates a scheduler that owns state and draws frames on clock.
func New[S any](state S, clock FrameClock, frame Task[S]) *Scheduler[S] {
	return &Scheduler[S]{
		state: state,
		clock: clock,
		frame: frame,
	}
}

// Every registers a task that runs on a fixed wall-clock period,
// independent of the frame rate. Must be called before Run.
func (s *Scheduler[S]) Every(name string, period time.Duration, task Task[S]) {
	s.periodic = append(s.periodic, periodic[S]{name: name, period: period, run: task})
}

// Run executes tasks on the calling goroutine until ctx is cancelled or the
// frame clock reports the host is done. A nil error means the host closed.
func (s *Scheduler[S]) Run(ctx context.Context) error {
	tickers := make([]*time.Ticker, len(s.periodic))
	for i, p := range s.periodic {
		tickers[i] = time.NewTicker(p.period)
	}
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Periodic tasks are few; fan their tickers into one channel tagged by
	// index so a single select covers them all.
	fired := make(chan firing, len(tickers))
	stop := make(chan struct{})
	defer close(stop)
	for i, t := range tickers {
		go forward(i, t.C, fired, stop)
	}

	next := s.clock.Next()
	for {
		if s.clock.Done() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case f := <-fired:
			s.periodic[f.index].run(f.at, s.state)

		case now := <-next:
			s.frame(now, s.state)
			next = s.clock.Next()
		}
	}
}

type firing struct {
	index int
	at    time.Time
}

// forward relays ticks without touching the scheduler's state.
func forward(index int, c <-chan time.Time, out chan<- firing, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case at := <-c:
			select {
			case out <- firing{index: index, at: at}:
			case <-stop:
				return
			}
		}
	}
}
