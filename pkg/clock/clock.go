// Package clock provides the time sources used by the frame counters.
//
// A Clock hands out Instants, opaque tick counts since an epoch chosen by the
// clock itself. Only differences between Instants of the same Clock are
// meaningful; Resolution tells how many ticks make up one second.
package clock

import (
	"errors"
	"math/bits"
	"time"
)

// ErrUnavailable is returned when a clock cannot produce a reading.
var ErrUnavailable = errors.New("clock unavailable")

// Instant is a point in time expressed in ticks of the Clock that produced it.
type Instant uint64

// Clock is a monotonic time source.
//
// Successive calls to Now on the same Clock never return a smaller Instant,
// two calls may return the same one.
type Clock interface {
	// Now returns the current instant.
	Now() (Instant, error)
	// Resolution returns the number of ticks per second. It never changes.
	Resolution() uint64
}

// Before reports whether i is strictly earlier than o.
func (i Instant) Before(o Instant) bool {
	return i < o
}

// Sub returns the ticks elapsed from o to i, 0 if o is after i.
func (i Instant) Sub(o Instant) uint64 {
	if o > i {
		return 0
	}
	return uint64(i - o)
}

// Ticks converts d to ticks of a clock with the given resolution.
// Negative durations convert to 0.
func Ticks(d time.Duration, resolution uint64) uint64 {
	if d <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(d), resolution)
	if hi >= uint64(time.Second) {
		return ^uint64(0)
	}
	q, _ := bits.Div64(hi, lo, uint64(time.Second))
	return q
}

// Duration converts ticks of a clock with the given resolution to a
// time.Duration, saturating at the largest representable duration.
func Duration(ticks, resolution uint64) time.Duration {
	if resolution == 0 {
		return 0
	}
	hi, lo := bits.Mul64(ticks, uint64(time.Second))
	if hi >= resolution {
		return time.Duration(1<<63 - 1)
	}
	q, _ := bits.Div64(hi, lo, resolution)
	if q > 1<<63-1 {
		return time.Duration(1<<63 - 1)
	}
	return time.Duration(q)
}
