// ABOUTME: Configuration management with environment variable and .env file support
// ABOUTME: Defines configuration for the server, the editing session, storage and logging

package config

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"

	"github.com/sagar-developer08/tree-json/pkg/utils/parse"
)

// Config holds all application configuration
type Config struct {
	// Server contains reference document API server configuration
	Server ServerConfig

	// Editor contains editing session configuration
	Editor EditorConfig

	// Session contains draft persistence configuration
	Session SessionConfig

	// Store contains the server document storage configuration
	Store StoreConfig

	// Cache contains shared cache backend configuration
	Cache CacheConfig

	// Log contains logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string

	// RateLimit is the number of requests allowed per client per RateWindow; 0 disables limiting
	RateLimit  int
	RateWindow time.Duration
}

// EditorConfig holds editing session configuration
type EditorConfig struct {
	// APIBaseURL is the document API the session syncs with
	APIBaseURL string

	// DebounceWindow is the quiet period before the renderer is updated
	DebounceWindow time.Duration

	// MaxContentLength is the draft size, in characters, at which persistence is skipped
	MaxContentLength int

	// RequestTimeout bounds every outgoing HTTP request
	RequestTimeout time.Duration

	// RemotePolicy is remote_wins or local_edits_win
	RemotePolicy string

	// Embedded marks the session as running inside a host page
	Embedded bool

	// FetchLimit caps documents fetched from a URL, in bytes
	FetchLimit int64
}

// SessionConfig holds draft persistence configuration
type SessionConfig struct {
	// Backend is memory, sqlite or redis
	Backend string

	TTL time.Duration

	// SQLitePath is the database file used by the sqlite backend
	SQLitePath string

	// ID scopes persisted keys; a stable ID lets a later run restore the draft
	ID string
}

// StoreConfig holds server document storage configuration
type StoreConfig struct {
	// Backend is cache (whatever Cache resolves to) or redisjson
	Backend string

	// Key is the storage key of the document
	Key string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	Redis RedisConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Backend is logrus or zap
	Backend string

	Level string

	// Format is text or json (logrus only)
	Format string

	// File sends logrus output to a rotated file when set
	File string
}

// Load reads the given .env files (".env" when none are given) into the
// environment and then builds the configuration. A missing default .env
// file is not an error; explicitly named files must exist. Variables already
// set in the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			if err := godotenv.Load(); err != nil {
				return nil, fmt.Errorf("failed to read .env: %w", err)
			}
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to read env files: %w", err)
	}
	return LoadFromEnv()
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:       getEnvOrDefault("PORT", "8000"),
			RateLimit:  parse.IntOr(os.Getenv("RATE_LIMIT"), 100),
			RateWindow: parse.DurationOr(os.Getenv("RATE_WINDOW"), time.Minute),
		},
		Editor: EditorConfig{
			APIBaseURL:       getEnvOrDefault("API_URL", "http://localhost:8000"),
			DebounceWindow:   parse.DurationOr(os.Getenv("DEBOUNCE_WINDOW"), 800*time.Millisecond),
			MaxContentLength: parse.IntOr(os.Getenv("MAX_CONTENT_LENGTH"), 80000),
			RequestTimeout:   parse.DurationOr(os.Getenv("REQUEST_TIMEOUT"), 30*time.Second),
			RemotePolicy:     getEnvOrDefault("REMOTE_POLICY", "remote_wins"),
			Embedded:         parse.BoolOr(os.Getenv("EMBEDDED"), false),
			FetchLimit:       parse.Int64Or(os.Getenv("FETCH_LIMIT"), 16<<20),
		},
		Session: SessionConfig{
			Backend:    getEnvOrDefault("SESSION_BACKEND", "memory"),
			TTL:        parse.DurationOr(os.Getenv("SESSION_TTL"), 24*time.Hour),
			SQLitePath: getEnvOrDefault("SESSION_DB_PATH", "tree-json.db"),
			ID:         os.Getenv("SESSION_ID"),
		},
		Store: StoreConfig{
			Backend: getEnvOrDefault("STORE_BACKEND", "cache"),
			Key:     getEnvOrDefault("STORE_KEY", "document:current"),
		},
		Cache: CacheConfig{
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: os.Getenv("REDIS_PASSWORD"),
				DB:       parse.IntOr(os.Getenv("REDIS_DB"), 0),
			},
		},
		Log: LogConfig{
			Backend: getEnvOrDefault("LOG_BACKEND", "logrus"),
			Level:   getEnvOrDefault("LOG_LEVEL", "info"),
			Format:  getEnvOrDefault("LOG_FORMAT", "text"),
			File:    os.Getenv("LOG_FILE"),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	needsRedis := c.Session.Backend == "redis" || c.Store.Backend == "redisjson"

	sections := []struct {
		name string
		err  error
	}{
		{"server", validation.ValidateStruct(&c.Server,
			validation.Field(&c.Server.Port, validation.Required, is.Port),
			validation.Field(&c.Server.RateLimit, validation.Min(0)),
			validation.Field(&c.Server.RateWindow, validation.When(c.Server.RateLimit > 0, validation.Required)),
		)},
		{"editor", validation.ValidateStruct(&c.Editor,
			validation.Field(&c.Editor.APIBaseURL, validation.Required, is.RequestURL),
			validation.Field(&c.Editor.DebounceWindow, validation.Required),
			validation.Field(&c.Editor.MaxContentLength, validation.Required, validation.Min(1)),
			validation.Field(&c.Editor.RequestTimeout, validation.Required),
			validation.Field(&c.Editor.RemotePolicy, validation.In("remote_wins", "local_edits_win")),
			validation.Field(&c.Editor.FetchLimit, validation.Required, validation.Min(int64(1))),
		)},
		{"session", validation.ValidateStruct(&c.Session,
			validation.Field(&c.Session.Backend, validation.Required, validation.In("memory", "sqlite", "redis")),
			validation.Field(&c.Session.TTL, validation.Required),
			validation.Field(&c.Session.SQLitePath, validation.When(c.Session.Backend == "sqlite", validation.Required)),
		)},
		{"store", validation.ValidateStruct(&c.Store,
			validation.Field(&c.Store.Backend, validation.Required, validation.In("cache", "redisjson")),
			validation.Field(&c.Store.Key, validation.Required),
		)},
		{"cache", validation.ValidateStruct(&c.Cache.Redis,
			validation.Field(&c.Cache.Redis.Address, validation.When(needsRedis, validation.Required)),
			validation.Field(&c.Cache.Redis.DB, validation.Min(0)),
		)},
		{"log", validation.ValidateStruct(&c.Log,
			validation.Field(&c.Log.Backend, validation.In("logrus", "zap")),
			validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "error")),
			validation.Field(&c.Log.Format, validation.In("text", "json")),
		)},
	}

	for _, section := range sections {
		if section.err != nil {
			return fmt.Errorf("%s: %w", section.name, section.err)
		}
	}
	return nil
}
