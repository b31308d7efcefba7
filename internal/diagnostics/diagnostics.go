// Package diagnostics provides the rotating-file structured logger shared
// by the CLI and any other caller that wants decode-path diagnostics,
// following the rotating-file-plus-slog idiom used elsewhere in the
// reference stack: a small *lumberjack.Logger feeding a stdlib *slog.Logger,
// falling back to stderr when no file is configured.
package diagnostics

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig configures the rotating file sink. A zero value logs to stderr.
type LogConfig struct {
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Verbose    bool
}

// NewLogger builds a *slog.Logger per cfg. Every line it emits carries a
// "session" attribute so a batch run across many files can be correlated in
// aggregated logs.
func NewLogger(cfg LogConfig) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	var out *os.File
	var rotator *lumberjack.Logger

	if cfg.FilePath != "" {
		rotator = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSizeMB, 50),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
		}
	} else {
		out = os.Stderr
	}

	var handler slog.Handler
	if rotator != nil {
		handler = slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	}

	session := uuid.NewString()

	return slog.New(handler).With("session", session)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}

	return v
}
