package clock

import "time"

// StdClock is a Clock backed by the Go runtime monotonic clock.
//
// Instants are nanoseconds elapsed since the clock was created, which leaves
// roughly 584 years of range in a uint64.
type StdClock struct {
	start time.Time
}

// NewStdClock creates a StdClock whose epoch is the moment of the call.
func NewStdClock() *StdClock {
	return &StdClock{start: time.Now()}
}

// Now returns the nanoseconds elapsed since the clock was created.
// It never fails.
func (c *StdClock) Now() (Instant, error) {
	return Instant(time.Since(c.start)), nil
}

// Resolution returns one tick per nanosecond.
func (c *StdClock) Resolution() uint64 {
	return uint64(time.Second)
}
