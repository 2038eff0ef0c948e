package fps

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/stiflerGit/fpscounter/pkg/clock"
)

// ErrTooManyStreams is returned by Map.Get when the Map is full.
var ErrTooManyStreams = errors.New("too many streams")

// Map holds one SyncCounter per stream key, created on first use.
type Map struct {
	sync.Mutex
	keyToCounter   map[string]*SyncCounter
	maxFPS         int
	maxStreams     int
	newClock       func() clock.Clock
	counterOptions []Option
}

// NewMap is the constructor of Map
func NewMap(maxFPS int, options ...MapOption) (*Map, error) {
	if maxFPS < 1 {
		return nil, fmt.Errorf("creating map: %w: %d", ErrInvalidMaxFPS, maxFPS)
	}

	m := &Map{
		keyToCounter: make(map[string]*SyncCounter),
		maxFPS:       maxFPS,
		newClock: func() clock.Clock {
			return clock.NewStdClock()
		},
	}

	for _, opt := range options {
		opt(m)
	}

	return m, nil
}

// MaxFPS returns the capacity given to every counter.
func (m *Map) MaxFPS() int {
	return m.maxFPS
}

// Get returns the counter of key, creating it if needed.
func (m *Map) Get(key string) (*SyncCounter, error) {
	m.Lock()
	defer m.Unlock()

	if s, ok := m.keyToCounter[key]; ok {
		return s, nil
	}

	if m.maxStreams > 0 && len(m.keyToCounter) >= m.maxStreams {
		return nil, fmt.Errorf("adding stream %q: %w (%d)", key, ErrTooManyStreams, m.maxStreams)
	}

	c, err := New(m.maxFPS, m.newClock(), m.counterOptions...)
	if err != nil {
		return nil, fmt.Errorf("adding stream %q: %w", key, err)
	}

	s := NewSyncCounter(c)
	m.keyToCounter[key] = s
	return s, nil
}

// Lookup returns the counter of key without creating it.
func (m *Map) Lookup(key string) (*SyncCounter, bool) {
	m.Lock()
	defer m.Unlock()

	s, ok := m.keyToCounter[key]
	return s, ok
}

// Remove forgets the counter of key and reports whether it existed.
func (m *Map) Remove(key string) bool {
	m.Lock()
	defer m.Unlock()

	_, ok := m.keyToCounter[key]
	delete(m.keyToCounter, key)
	return ok
}

// Keys returns the stream keys, sorted.
func (m *Map) Keys() []string {
	m.Lock()
	defer m.Unlock()

	keys := make([]string, 0, len(m.keyToCounter))
	for k := range m.keyToCounter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of streams.
func (m *Map) Len() int {
	m.Lock()
	defer m.Unlock()

	return len(m.keyToCounter)
}
