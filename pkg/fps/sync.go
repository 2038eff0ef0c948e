package fps

import (
	"sync"
)

// SyncCounter is a Counter guarded by a mutex.
type SyncCounter struct {
	sync.Mutex
	c *Counter
}

// NewSyncCounter wraps c. c must not be used directly afterwards.
func NewSyncCounter(c *Counter) *SyncCounter {
	return &SyncCounter{c: c}
}

func (s *SyncCounter) TryTick() (int, error) {
	s.Lock()
	defer s.Unlock()

	return s.c.TryTick()
}

func (s *SyncCounter) TryTickMax() (int, error) {
	s.Lock()
	defer s.Unlock()

	return s.c.TryTickMax()
}

func (s *SyncCounter) Tick() int {
	s.Lock()
	defer s.Unlock()

	return s.c.Tick()
}

func (s *SyncCounter) TickMax() int {
	s.Lock()
	defer s.Unlock()

	return s.c.TickMax()
}

func (s *SyncCounter) MaxFPS() int {
	// immutable after construction
	return s.c.MaxFPS()
}

func (s *SyncCounter) Snapshot() Snapshot {
	s.Lock()
	defer s.Unlock()

	return s.c.Snapshot()
}

func (s *SyncCounter) MarshalJSON() ([]byte, error) {
	s.Lock()
	defer s.Unlock()

	return s.c.MarshalJSON()
}
