// Package logging provides the shared zap logger for pomotrack.
// The logger is a no-op unless verbose mode is enabled via configuration
// or the POMO_DEBUG environment variable.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init configures the shared logger. When verbose is false the logger stays
// a no-op, so call sites can log unconditionally.
func Init(verbose bool) error {
	if !verbose && os.Getenv("POMO_DEBUG") == "" {
		return nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// L returns the shared logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sync flushes any buffered log entries. Safe to call on the no-op logger.
func Sync() {
	_ = L().Sync()
}

// SetLogger replaces the shared logger. Intended for tests.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}
