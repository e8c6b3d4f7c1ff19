package main

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// newLogger returns a diagnostic logger for one CLI invocation, tagged with
// a fresh run id. It also sets the global zerolog level, so the analysis
// packages' debug lines appear only when verbose is set. It writes to
// stderr only; analysis results themselves are always printed with fmt,
// never through the logger.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		out = colorable.NewColorableStderr()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.New().String()).
		Logger()
}
