// Package logging sets up the bookdesk debug log.
//
// The terminal is owned by the UI, so logs go to a file: structured JSON
// lines written with zap, one file per run location (~/.local/state/bookdesk
// by default). The logger records session events and failed mutations that
// the UI intentionally keeps quiet about, such as logout transport errors.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New opens the log file and returns a logger plus a flush function to call
// on shutdown.
func New(path string) (*zap.Logger, func() error, error) {
	if path == "" {
		logger := zap.NewNop()
		return logger, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.LevelKey = "lvl"
	encoderConfig.MessageKey = "msg"

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.Lock(file), zapcore.InfoLevel)
	logger := zap.New(core)

	flusher := func() error {
		err := logger.Sync()
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("flush logs: %w", err)
		}
		return nil
	}
	return logger, flusher, nil
}
