package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs the default slog logger for the environment: JSON at info
// level in prod, text at debug level everywhere else.
func Setup(env string) *slog.Logger {
	logger := New(os.Stdout, env)
	slog.SetDefault(logger)

	return logger
}

func New(w io.Writer, env string) *slog.Logger {
	if env == "prod" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
