// Package logging builds the file-backed zap logger used across the
// application. Logging never goes to stdout/stderr because the chat TUI
// owns the terminal.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a JSON logger writing to the given file path, creating the
// parent directory if needed.
func New(path string, verbose bool) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

// Nop returns a logger that discards everything. Used in tests and in
// commands that have nothing worth logging.
func Nop() *zap.Logger {
	return zap.NewNop()
}
