package app

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the command logger. Log output goes to stderr so it
// never mixes with formatted reports on stdout. Verbose enables debug
// level; the default only surfaces warnings.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
