package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
)

// New opens (or creates) the log file at path and returns the root logger.
// The terminal belongs to the TUI, so nothing is written to stderr.
func New(path, level string) (hclog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(f, level), f, nil
}

// NewWriter builds a logger on an arbitrary writer.
func NewWriter(w io.Writer, level string) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "innertone",
		Level:  lvl,
		Output: w,
	})
}

// Discard is used by tests and one-shot commands that need no log file.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
