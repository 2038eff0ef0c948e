package clock

import (
	"fmt"
	"sync"
	"time"
)

// ManualClock is a Clock that only moves when told to.
//
// It is meant for simulations and tests, where frames must land on exact
// instants. It is safe for concurrent use.
type ManualClock struct {
	mu         sync.Mutex
	now        Instant
	resolution uint64
	err        error
}

// NewManualClock creates a ManualClock at instant 0 with the given
// resolution in ticks per second. A zero resolution defaults to nanoseconds.
func NewManualClock(resolution uint64) *ManualClock {
	if resolution == 0 {
		resolution = uint64(time.Second)
	}
	return &ManualClock{resolution: resolution}
}

// Now returns the current instant, or the injected failure.
func (c *ManualClock) Now() (Instant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return 0, c.err
	}
	return c.now, nil
}

// Resolution returns the ticks per second given at creation.
func (c *ManualClock) Resolution() uint64 {
	return c.resolution
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.AdvanceTicks(Ticks(d, c.resolution))
}

// AdvanceTicks moves the clock forward by n ticks.
func (c *ManualClock) AdvanceTicks(n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now += Instant(n)
}

// Set moves the clock to i. Moving backwards is refused.
func (c *ManualClock) Set(i Instant) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < c.now {
		return fmt.Errorf("setting clock to %d: before current instant %d", i, c.now)
	}
	c.now = i
	return nil
}

// Fail makes every following call to Now return err until Recover is called.
// A nil err fails with ErrUnavailable.
func (c *ManualClock) Fail(err error) {
	if err == nil {
		err = ErrUnavailable
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = err
}

// Recover clears a failure injected with Fail.
func (c *ManualClock) Recover() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = nil
}
