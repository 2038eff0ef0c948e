// Package window implements a fixed-capacity FIFO of clock instants.
package window

import (
	"errors"
	"fmt"

	"github.com/stiflerGit/fpscounter/pkg/clock"
)

// ErrFull is returned by PushBack when the window holds Cap instants.
var ErrFull = errors.New("window full")

// Window keeps instants in arrival order, managed as a circular buffer.
//
// The storage is allocated once by New and never grows.
type Window struct {
	instants []clock.Instant
	head     int // index of the oldest instant
	size     int
}

// New is the constructor of Window
func New(capacity int) (*Window, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1, got %d", capacity)
	}

	return &Window{instants: make([]clock.Instant, capacity)}, nil
}

// Cap returns the maximum number of instants the window can hold.
func (w *Window) Cap() int {
	return len(w.instants)
}

// Len returns the number of instants in the window.
func (w *Window) Len() int {
	return w.size
}

// Full reports whether PushBack would fail.
func (w *Window) Full() bool {
	return w.size == len(w.instants)
}

// Front returns the oldest instant.
func (w *Window) Front() (clock.Instant, bool) {
	if w.size == 0 {
		return 0, false
	}
	return w.instants[w.head], true
}

// Back returns the newest instant.
func (w *Window) Back() (clock.Instant, bool) {
	if w.size == 0 {
		return 0, false
	}
	return w.instants[w.index(w.size-1)], true
}

// PopFront removes and returns the oldest instant.
func (w *Window) PopFront() (clock.Instant, bool) {
	if w.size == 0 {
		return 0, false
	}

	i := w.instants[w.head]
	w.head = (w.head + 1) % len(w.instants)
	w.size--
	return i, true
}

// PushBack appends i as the newest instant.
func (w *Window) PushBack(i clock.Instant) error {
	if w.Full() {
		return ErrFull
	}

	w.instants[w.index(w.size)] = i
	w.size++
	return nil
}

// EvictBefore pops every instant strictly earlier than cutoff from the front
// and returns how many were removed. It relies on the window being sorted.
func (w *Window) EvictBefore(cutoff clock.Instant) int {
	n := 0
	for {
		front, ok := w.Front()
		if !ok || !front.Before(cutoff) {
			return n
		}
		w.PopFront()
		n++
	}
}

// Reset empties the window, keeping its storage.
func (w *Window) Reset() {
	w.head = 0
	w.size = 0
}

// Do calls f on each instant, oldest first.
func (w *Window) Do(f func(clock.Instant)) {
	for k := 0; k < w.size; k++ {
		f(w.instants[w.index(k)])
	}
}

func (w *Window) index(k int) int {
	return (w.head + k) % len(w.instants)
}
