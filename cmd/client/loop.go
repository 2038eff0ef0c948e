package main

import (
	"context"
	"fmt"
	"time"
)

type loopFlags struct {
	Rate   float64 `help:"frames drawn per second" default:"8"`
	Frames int     `help:"number of frames to draw, 0 runs until interrupted" default:"20"`
}

func (f loopFlags) period() (time.Duration, error) {
	if f.Rate <= 0 {
		return 0, fmt.Errorf("rate must be positive, got %v", f.Rate)
	}
	return time.Duration(float64(time.Second) / f.Rate), nil
}

// run calls frame once per period until Frames frames are drawn, ctx is done
// or frame fails.
func (f loopFlags) run(ctx context.Context, frame func(i int) error) error {
	period, err := f.period()
	if err != nil {
		return err
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for i := 0; f.Frames == 0 || i < f.Frames; i++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if err = frame(i); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	return nil
}
