// ABOUTME: Logger implementation on zap's production JSON encoder
// ABOUTME: Selected with LOG_BACKEND=zap

package zap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger implements the Logger interface using zap
type Logger struct {
	log *zap.Logger
}

// New creates a production logger at the given level name (info when unknown)
func New(level string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{log: log}, nil
}

// NewFromZap wraps an existing zap logger
func NewFromZap(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, toFields(fields)...)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, toFields(fields)...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, toFields(fields)...)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.Error(msg, toFields(fields)...)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.log.Sync()
}

func toFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
