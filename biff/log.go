package biff

import (
	"io"
	"log/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// VerbosityLevel maps a verbosity count onto a slog level.
func VerbosityLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// NewLogger returns a text logger writing to logfile at the level selected
// by verbosity. A nil logfile discards everything.
func NewLogger(logfile io.Writer, verbosity int) *slog.Logger {
	if logfile == nil {
		return discardLogger()
	}
	return slog.New(slog.NewTextHandler(logfile, &slog.HandlerOptions{Level: VerbosityLevel(verbosity)}))
}
