// Package logging builds the application logger. TUI programs own the
// terminal, so everything goes to a file, never to stdout/stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a file-backed zap logger. An empty path places the log
// next to the user cache directory; "-" disables logging entirely.
func New(path string, debugLevel bool) (*zap.Logger, func(), error) {
	if path == "-" {
		return zap.NewNop(), func() {}, nil
	}

	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			cacheDir = "."
		}
		dir := filepath.Join(cacheDir, "kanadex")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		path = filepath.Join(dir, "kanadex.log")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := zapcore.InfoLevel
	if debugLevel {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), level)

	logger := zap.New(core)
	cleanup := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, cleanup, nil
}
