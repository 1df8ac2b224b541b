package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	defaultDataDir = ".eulercauchy"

	envDataDir  = "EULERCAUCHY_DATA_DIR"
	envLogLevel = "EULERCAUCHY_LOG_LEVEL"
)

// Env holds process settings read from environment variables.
type Env struct {
	DataDir  string
	LogLevel slog.Level
}

// LoadEnv reads settings from the environment with defaults.
func LoadEnv() Env {
	env := Env{
		DataDir:  defaultDataDir,
		LogLevel: slog.LevelWarn,
	}

	if v := os.Getenv(envDataDir); v != "" {
		env.DataDir = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		env.LogLevel = ParseLogLevel(v)
	}

	return env
}

func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured text logger writing to w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
