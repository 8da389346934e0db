package main

import (
	"io"
	"log/slog"
	"os"
)

var theLog = newLog(os.Stderr, os.Getenv("L5X_LOG"))

// newLog builds the command's logger.  level is a slog level name such
// as "debug" or "warn"; unknown or empty names log at info.  Time is
// dropped, and so is the level key at info.
func newLog(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				if a.Value.Any() == slog.LevelInfo {
					return slog.Attr{}
				}
			}
			return a
		},
	}))
}
