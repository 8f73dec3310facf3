// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the logging configuration.
type Config struct {
	Level      slog.Level
	FilePath   string // empty disables file output
	MaxSizeMB  int64
	MaxBackups int
	Console    bool
	JSON       bool // JSON handler instead of text
}

// DefaultConfig returns console text logging at info level.
func DefaultConfig() Config {
	return Config{
		Level:      slog.LevelInfo,
		MaxSizeMB:  50,
		MaxBackups: 3,
		Console:    true,
	}
}

// ParseLevel converts a string log level to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a logger with the given configuration.
func NewLogger(config Config) (*slog.Logger, error) {
	var writers []io.Writer

	if config.Console {
		writers = append(writers, os.Stderr)
	}

	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
			return nil, err
		}
		fileWriter, err := NewRotatingFileWriter(
			config.FilePath,
			config.MaxSizeMB*1024*1024,
			config.MaxBackups,
		)
		if err != nil {
			return nil, err
		}
		writers = append(writers, fileWriter)
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	var writer io.Writer = writers[0]
	if len(writers) > 1 {
		writer = io.MultiWriter(writers...)
	}

	opts := &slog.HandlerOptions{Level: config.Level}
	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	return slog.New(handler), nil
}

// SetDefault creates a logger from config and installs it as the slog
// default.
func SetDefault(config Config) error {
	logger, err := NewLogger(config)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
