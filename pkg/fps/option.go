package fps

import "github.com/rs/zerolog"

type Option func(c *Counter)

// WithLogger sets the logger used to report capped readings and clock
// failures. By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Counter) {
		c.logger = logger
	}
}
