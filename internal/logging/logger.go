package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs a JSON logger on stdout as the slog default and returns its
// handler so it can be combined with other sinks later.
func Setup() slog.Handler {
	return SetupWriter(os.Stdout)
}

func SetupWriter(w io.Writer) slog.Handler {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	return handler
}
