package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stiflerGit/fpscounter/pkg/fps"
)

type localCmd struct {
	Loop loopFlags `embed:""`

	MaxFPS int  `help:"highest frame rate the counter can measure" default:"10" name:"max-fps"`
	Capped bool `help:"cap the reading at max-fps instead of failing"`
}

func (c *localCmd) Run(ctx context.Context, logger zerolog.Logger) error {
	counter, err := fps.NewDefault(c.MaxFPS, fps.WithLogger(logger))
	if err != nil {
		return err
	}

	tick := counter.TryTick
	if c.Capped {
		tick = counter.TryTickMax
	}

	return c.Loop.run(ctx, func(i int) error {
		n, err := tick()
		if err != nil {
			return err
		}

		logger.Info().Int("frame", i).Int("fps", n).Msg("frames per second")
		return nil
	})
}
