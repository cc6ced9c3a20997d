// Package logging builds the zerolog logger shared by the CLI and the client core.
//
// Loggers are created at trace level and filtered through zerolog's global
// level, so the effective verbosity can be changed after wiring (for example
// once flags have been parsed).
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func New(w io.Writer) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}

	return zerolog.New(console).Level(zerolog.TraceLevel).With().Timestamp().Logger()
}

// SetLevel applies level (trace, debug, info, warn, error, disabled) globally.
func SetLevel(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(parsed)
	return nil
}

func ParseLevel(level string) (zerolog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(level))
	if trimmed == "" {
		return zerolog.WarnLevel, nil
	}

	parsed, err := zerolog.ParseLevel(trimmed)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level %q: %w", level, err)
	}
	if parsed == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("parse log level %q: unknown level", level)
	}

	return parsed, nil
}
