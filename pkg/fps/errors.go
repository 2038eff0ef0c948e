package fps

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxFPS matches every *MaxFPSError.
	ErrMaxFPS = errors.New("maximum frames per second reached")
	// ErrInvalidMaxFPS is returned by the constructors for a maxFPS below 1.
	ErrInvalidMaxFPS = errors.New("maxFPS must be at least 1")
	// ErrNilClock is returned by New when no clock is given.
	ErrNilClock = errors.New("nil clock")
)

// ClockError is returned when the clock failed to produce an instant.
type ClockError struct {
	Err error
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("reading clock: %v", e.Err)
}

func (e *ClockError) Unwrap() error {
	return e.Err
}

// MaxFPSError is returned when a frame arrives while the window already holds
// Limit frames newer than one second. Increase maxFPS to avoid it.
type MaxFPSError struct {
	Limit int
}

func (e *MaxFPSError) Error() string {
	return fmt.Sprintf("maximum of %d frames per second reached", e.Limit)
}

func (e *MaxFPSError) Is(target error) bool {
	return target == ErrMaxFPS
}
