// Package fps measures frames per second over a sliding one second window.
//
// A Counter remembers the instant of every frame seen during the last second
// in a window whose capacity, maxFPS, is fixed at construction. Each tick
// evicts the frames older than one second, records the new one and returns
// how many frames are left: the exact number of frames in the trailing second.
//
//	c, err := fps.NewDefault(240)
//	if err != nil {
//		return err
//	}
//	for {
//		draw()
//		fmt.Println("FPS:", c.Tick())
//	}
//
// A Counter is not safe for concurrent use, see SyncCounter.
package fps

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stiflerGit/fpscounter/pkg/clock"
	"github.com/stiflerGit/fpscounter/pkg/window"
)

// Counter keeps the instants of the frames received in the last second.
//
// The clock must be monotonic: an instant earlier than the last recorded one
// breaks the ordering the eviction relies on.
type Counter struct {
	window    *window.Window
	clock     clock.Clock
	maxFPS    int
	oneSecond uint64 // one second in clock ticks

	logger zerolog.Logger
}

// New is the constructor of Counter
//
// maxFPS is the highest reading the counter can produce, it must be at least
// the highest frame rate expected or every tick past it fails.
func New(maxFPS int, c clock.Clock, options ...Option) (*Counter, error) {
	if maxFPS < 1 {
		return nil, fmt.Errorf("creating counter: %w: %d", ErrInvalidMaxFPS, maxFPS)
	}
	if c == nil {
		return nil, fmt.Errorf("creating counter: %w", ErrNilClock)
	}

	w, err := window.New(maxFPS)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	counter := &Counter{
		window:    w,
		clock:     c,
		maxFPS:    maxFPS,
		oneSecond: clock.Ticks(time.Second, c.Resolution()),
		logger:    zerolog.Nop(),
	}

	for _, opt := range options {
		opt(counter)
	}

	return counter, nil
}

// NewDefault is equal to New using a clock.StdClock started now
func NewDefault(maxFPS int, options ...Option) (*Counter, error) {
	return New(maxFPS, clock.NewStdClock(), options...)
}

// Must is equal to New but panics if there is some error
func Must(maxFPS int, c clock.Clock, options ...Option) *Counter {
	counter, err := New(maxFPS, c, options...)
	if err != nil {
		panic(err)
	}
	return counter
}

// MaxFPS returns the capacity of the window.
func (c *Counter) MaxFPS() int {
	return c.maxFPS
}

// Len returns the number of frames in the window as of the last tick.
// It does not read the clock, so stale frames are still counted.
func (c *Counter) Len() int {
	return c.window.Len()
}

// Reset forgets every recorded frame.
func (c *Counter) Reset() {
	c.window.Reset()
}

// TryTick records a frame and returns the frames per second.
//
// It returns a *ClockError when the clock fails and a *MaxFPSError when the
// window already holds maxFPS frames of the last second. In both cases the
// frame is not recorded.
func (c *Counter) TryTick() (int, error) {
	n, full, err := c.record()
	if err != nil {
		return 0, err
	}
	if full {
		return 0, &MaxFPSError{Limit: c.maxFPS}
	}
	return n, nil
}

// TryTickMax is like TryTick but a full window is not an error: the reading
// is capped at maxFPS.
func (c *Counter) TryTickMax() (int, error) {
	n, full, err := c.record()
	if err != nil {
		return 0, err
	}
	if full {
		c.logger.Debug().Int("max_fps", c.maxFPS).Msg("frame rate capped")
		return c.maxFPS, nil
	}
	return n, nil
}

// Tick is like TryTick but panics on error.
func (c *Counter) Tick() int {
	n, err := c.TryTick()
	if err != nil {
		c.logger.Error().Err(err).Msg("tick failed")
		panic(err)
	}
	return n
}

// TickMax is like TryTickMax but panics if the clock fails.
func (c *Counter) TickMax() int {
	n, err := c.TryTickMax()
	if err != nil {
		c.logger.Error().Err(err).Msg("tick failed")
		panic(err)
	}
	return n
}

// record evicts the frames older than one second and appends a new one.
// full is true when there was no room left for it.
func (c *Counter) record() (n int, full bool, err error) {
	now, err := c.clock.Now()
	if err != nil {
		return 0, false, &ClockError{Err: err}
	}

	// within the first second of the clock nothing can be stale
	var cutoff clock.Instant
	if uint64(now) > c.oneSecond {
		cutoff = now - clock.Instant(c.oneSecond)
	}

	c.window.EvictBefore(cutoff)

	if err = c.window.PushBack(now); err != nil {
		return c.window.Len(), true, nil
	}

	return c.window.Len(), false, nil
}
