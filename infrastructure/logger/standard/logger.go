// ABOUTME: Standard logger implementation on logrus
// ABOUTME: Text or JSON output with optional rotated file output via lumberjack

package standard

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a StandardLogger
type Options struct {
	// Level is a logrus level name; info when empty or unknown
	Level string

	// Format is "text" or "json"
	Format string

	// File, when set, sends output to a rotated log file instead of Output
	File string

	// Output defaults to stdout
	Output io.Writer
}

// StandardLogger implements the Logger interface using logrus
type StandardLogger struct {
	entry *logrus.Logger
}

// NewStandardLogger creates a logger writing text at info level to stdout
func NewStandardLogger() *StandardLogger {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a logger from opts
func NewWithOptions(opts Options) *StandardLogger {
	log := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if opts.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch {
	case opts.File != "":
		log.SetOutput(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    500, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	case opts.Output != nil:
		log.SetOutput(opts.Output)
	default:
		log.SetOutput(os.Stdout)
	}

	return &StandardLogger{entry: log}
}

// Logrus exposes the underlying logger, mainly for hooks
func (l *StandardLogger) Logrus() *logrus.Logger {
	return l.entry
}

// Debug logs a debug message
func (l *StandardLogger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *StandardLogger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *StandardLogger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *StandardLogger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}
