// Package logging configures runtime JSONL logging output.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Runtime bundles the configured logger and its open file handle lifecycle.
type Runtime struct {
	Logger zerolog.Logger
	Path   string
	closer io.Closer
}

// Close flushes and closes the logger output sink.
func (r Runtime) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// New opens path for appending and returns a JSON logger at the given level.
// The terminal is reserved for the game, so logs never go to stdout.
func New(path, level string) (Runtime, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return Runtime{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return Runtime{}, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return Runtime{}, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return Runtime{Logger: logger, Path: path, closer: f}, nil
}

// Nop returns a runtime that discards everything.
func Nop() Runtime {
	return Runtime{Logger: zerolog.Nop()}
}

func parseLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
