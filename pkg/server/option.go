package server

import (
	"github.com/rs/zerolog"

	"github.com/stiflerGit/fpscounter/pkg/clock"
)

type Option func(s *Server)

// WithMaxFPS sets the capacity of every stream counter.
func WithMaxFPS(n int) Option {
	return func(s *Server) {
		s.maxFPS = n
	}
}

// WithMaxStreams bounds the number of streams tracked at once.
func WithMaxStreams(n int) Option {
	return func(s *Server) {
		s.maxStreams = n
	}
}

// WithStrictCapacity makes a frame past the capacity of its stream fail with
// 429 Too Many Requests instead of being reported as capped.
func WithStrictCapacity() Option {
	return func(s *Server) {
		s.strict = true
	}
}

// WithClockFactory sets the function giving each new stream its clock.
func WithClockFactory(newClock func() clock.Clock) Option {
	return func(s *Server) {
		s.newClock = newClock
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}
