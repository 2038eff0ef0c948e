package fps

import (
	"encoding/json"
	"time"

	"github.com/stiflerGit/fpscounter/pkg/clock"
)

// Snapshot is a read-only view of a Counter.
type Snapshot struct {
	Frames     int           `json:"frames"`
	MaxFPS     int           `json:"max_fps"`
	Resolution uint64        `json:"resolution"`
	Oldest     clock.Instant `json:"oldest"`
	Newest     clock.Instant `json:"newest"`
	Span       time.Duration `json:"span"`
}

// Snapshot returns the state of the window as of the last tick.
func (c *Counter) Snapshot() Snapshot {
	s := Snapshot{
		Frames:     c.window.Len(),
		MaxFPS:     c.maxFPS,
		Resolution: c.clock.Resolution(),
	}

	s.Oldest, _ = c.window.Front()
	s.Newest, _ = c.window.Back()
	s.Span = clock.Duration(s.Newest.Sub(s.Oldest), s.Resolution)

	return s
}

func (c *Counter) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Snapshot())
}
