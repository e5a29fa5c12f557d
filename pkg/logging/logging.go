// Package logging is the single place the zerolog root logger is built.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a JSON logger tagged with the component name. LOG_LEVEL
// (debug/info/warn/error) controls verbosity, defaulting to info.
func New(component string) zerolog.Logger {
	level := zerolog.InfoLevel
	if lv, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lv != zerolog.NoLevel {
		level = lv
	}
	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}
