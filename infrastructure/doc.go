// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: in-memory cache on patrickmn/go-cache
// - cache/sqlite: durable cache on mattn/go-sqlite3, drafts survive restarts
// - cache/redis: shared cache on go-redis, plus a RedisJSON document repository
// - http/standard: net/http client, one attempt per call, optional request logging
// - logger/standard: logrus logger with optional lumberjack file rotation
// - logger/zap: zap logger
// - render/console: renderer writing canonical JSON to an io.Writer
// - notify: notifier routing user notifications to the logger
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "session:abc:content", []byte(text), 24*time.Hour)
//	value, err := cache.Get(ctx, "session:abc:content")
//	if errors.Is(err, interfaces.ErrCacheMiss) {
//	    // nothing stored
//	}
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # HTTP Client
//
//	client := standard.NewLoggingHTTPClient(30*time.Second, logger)
//	resp, err := client.Get(ctx, "http://localhost:8000/api/json")
//	if err != nil {
//	    // *errors.NetworkError
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := standard.NewWithOptions(standard.Options{Level: "debug", Format: "json"})
//	logger.Info("Document loaded", map[string]interface{}{
//	    "format": "yaml",
//	})
package infrastructure
