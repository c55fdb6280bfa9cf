// ABOUTME: Default implementations for editing kit dependencies
// ABOUTME: Factory functions for caches, loggers, HTTP client, renderer and notifier

package editorkit

import (
	"fmt"
	"os"
	"time"

	"github.com/sagar-developer08/tree-json/core/interfaces"
	"github.com/sagar-developer08/tree-json/infrastructure/cache/memory"
	"github.com/sagar-developer08/tree-json/infrastructure/cache/redis"
	"github.com/sagar-developer08/tree-json/infrastructure/cache/sqlite"
	httpInfra "github.com/sagar-developer08/tree-json/infrastructure/http/standard"
	loggerInfra "github.com/sagar-developer08/tree-json/infrastructure/logger/standard"
	zapInfra "github.com/sagar-developer08/tree-json/infrastructure/logger/zap"
	"github.com/sagar-developer08/tree-json/infrastructure/notify"
	"github.com/sagar-developer08/tree-json/infrastructure/render/console"
	"github.com/sagar-developer08/tree-json/pkg/config"
)

// DefaultHTTPClient creates an HTTP client that logs outgoing requests
func DefaultHTTPClient(timeout time.Duration, logger interfaces.Logger) interfaces.HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return httpInfra.NewLoggingHTTPClient(timeout, logger)
}

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache()
}

// DefaultLogger creates a default logger that writes to stderr, keeping
// stdout free for rendered documents
func DefaultLogger() interfaces.Logger {
	return loggerInfra.NewWithOptions(loggerInfra.Options{Output: os.Stderr})
}

// DefaultRenderer creates a renderer that prints documents to stdout
func DefaultRenderer() interfaces.Renderer {
	return console.NewRenderer(os.Stdout)
}

// DefaultNotifier routes notifications to the logger and echoes them on stderr
func DefaultNotifier(logger interfaces.Logger) interfaces.Notifier {
	return notify.NewLogNotifier(logger, os.Stderr)
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return &quietLogger{}
}

// quietLogger is a logger that discards all output
type quietLogger struct{}

func (q *quietLogger) Debug(msg string, fields map[string]interface{}) {}
func (q *quietLogger) Info(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Warn(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Error(msg string, fields map[string]interface{}) {}

// NewLogger builds the logger selected by cfg.Backend
func NewLogger(cfg config.LogConfig) (interfaces.Logger, error) {
	switch cfg.Backend {
	case "", "logrus":
		return loggerInfra.NewWithOptions(loggerInfra.Options{
			Level:  cfg.Level,
			Format: cfg.Format,
			File:   cfg.File,
			Output: os.Stderr,
		}), nil
	case "zap":
		logger, err := zapInfra.New(cfg.Level)
		if err != nil {
			return nil, err
		}
		return logger, nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", cfg.Backend)
	}
}

// OpenCache opens the cache backend named by backend: memory, sqlite or redis.
// Caches holding resources implement io.Closer.
func OpenCache(backend, sqlitePath string, redisCfg config.RedisConfig, logger interfaces.Logger) (interfaces.Cache, error) {
	switch backend {
	case "", "memory":
		return memory.NewMemoryCache(), nil
	case "sqlite":
		cache, err := sqlite.NewSQLiteCache(sqlitePath, logger)
		if err != nil {
			return nil, err
		}
		return cache, nil
	case "redis":
		cache, err := redis.NewRedisCache(redisCfg)
		if err != nil {
			return nil, err
		}
		return cache, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
