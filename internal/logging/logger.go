package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the process logger. JSON to stdout, level from config,
// falling back to info on unknown values.
func New(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil {
		lvl = parsed
	}

	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Str("app", "trimtime-api").
		Logger()
}
