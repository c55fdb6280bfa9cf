// ABOUTME: Main entry point for the tree-json document API server
// ABOUTME: Wires configuration, logging, document storage and the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sagar-developer08/tree-json/api"
	"github.com/sagar-developer08/tree-json/core/docstore"
	"github.com/sagar-developer08/tree-json/core/interfaces"
	"github.com/sagar-developer08/tree-json/editorkit"
	"github.com/sagar-developer08/tree-json/infrastructure/cache/memory"
	"github.com/sagar-developer08/tree-json/infrastructure/cache/redis"
	"github.com/sagar-developer08/tree-json/pkg/config"
	"github.com/sagar-developer08/tree-json/pkg/featureflags"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := editorkit.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logger.Info("Starting Tree JSON Document API", map[string]interface{}{
		"port":          cfg.Server.Port,
		"store_backend": cfg.Store.Backend,
		"cache_backend": cfg.Session.Backend,
	})

	repo, closeRepo := newRepository(cfg, logger)
	defer closeRepo()

	service := docstore.NewService(repo, logger)

	flags := featureflags.NewEnvManager("")
	apiConfig := api.APIConfig{Logger: logger}
	if flags.IsEnabled(context.Background(), featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = cfg.Server.RateLimit
		apiConfig.RateWindow = cfg.Server.RateWindow
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)
	api.RegisterRoutes(humaAPI, service, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

// newRepository picks where the document lives. RedisJSON keeps it
// inspectable with JSON.GET; otherwise it is a JSON blob in the configured
// cache. An unreachable Redis falls back to memory.
func newRepository(cfg *config.Config, logger interfaces.Logger) (interfaces.DocumentRepository, func()) {
	if cfg.Store.Backend == "redisjson" {
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err == nil {
			logger.Info("Using RedisJSON document store", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
				"key":     cfg.Store.Key,
			})
			return redis.NewJSONRepository(redisCache.Client(), cfg.Store.Key), func() { redisCache.Close() }
		}
		logger.Error("Failed to connect to Redis, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
		return docstore.NewCacheRepository(memory.NewMemoryCache(), cfg.Store.Key), func() {}
	}

	cache, err := editorkit.OpenCache(cfg.Session.Backend, cfg.Session.SQLitePath, cfg.Cache.Redis, logger)
	if err != nil {
		logger.Error("Failed to open cache, falling back to memory", map[string]interface{}{
			"backend": cfg.Session.Backend,
			"error":   err.Error(),
		})
		cache = memory.NewMemoryCache()
	}
	logger.Info("Using cache document store", map[string]interface{}{
		"backend": fmt.Sprintf("%T", cache),
		"key":     cfg.Store.Key,
	})

	closeFn := func() {}
	if closer, ok := cache.(interface{ Close() error }); ok {
		closeFn = func() { closer.Close() }
	}
	return docstore.NewCacheRepository(cache, cfg.Store.Key), closeFn
}
