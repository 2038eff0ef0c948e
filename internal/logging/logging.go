// Package logging builds the zerolog loggers used by the binaries.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// The formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New creates a logger writing to sink at the given level ("debug", "info",
// ...) in the given format.
func New(sink io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parsing log level %q: %w", level, err)
	}

	switch format {
	case FormatConsole:
		sink = zerolog.ConsoleWriter{Out: sink, TimeFormat: "15:04:05.000"}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return zerolog.New(sink).Level(lvl).With().Timestamp().Logger(), nil
}

// Stderr is New writing to os.Stderr.
func Stderr(level, format string) (zerolog.Logger, error) {
	return New(os.Stderr, level, format)
}
