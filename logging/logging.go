// Package logging builds the game logger
// The terminal belongs to the renderer, so output always goes to a file
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ericre997/RatioRage/config"
)

var ErrOpen = errors.New("log file open failed")

// New opens cfg.File for append and returns a logger and the file to close
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	log, err := NewWriter(cfg, f)
	if err != nil {
		f.Close()
		return zerolog.Nop(), nil, err
	}
	return log, f, nil
}

// NewWriter builds a logger over w with cfg's level and format
func NewWriter(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("app", "ratiorage").Logger(), nil
}
