package fps

import "github.com/stiflerGit/fpscounter/pkg/clock"

type MapOption func(m *Map)

// WithCounterOptions sets the options passed to every Counter the Map creates.
func WithCounterOptions(options ...Option) MapOption {
	return func(m *Map) {
		m.counterOptions = append(m.counterOptions, options...)
	}
}

// WithClockFactory sets the function giving each new Counter its clock.
// By default every Counter gets its own clock.StdClock.
func WithClockFactory(newClock func() clock.Clock) MapOption {
	return func(m *Map) {
		m.newClock = newClock
	}
}

// WithMaxStreams bounds the number of counters the Map holds. 0 means no bound.
func WithMaxStreams(n int) MapOption {
	return func(m *Map) {
		m.maxStreams = n
	}
}
