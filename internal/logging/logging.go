package logging

import (
	"io"
	"log/slog"
)

// New creates the process logger. Debug mode lowers the level to Debug;
// the default level keeps interactive sessions quiet.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
