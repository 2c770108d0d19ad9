package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageProviderUnknown = errors.New("lessons config: storage provider is invalid")
var ErrStorageDialectUnknown = errors.New("lessons config: storage dialect is invalid")
var ErrStorageDSNRequired = errors.New("lessons config: storage dsn is required for the bun provider")
var ErrCacheTTLInvalid = errors.New("lessons config: cache ttl must be positive when cache is enabled")
var ErrEditorConcurrencyInvalid = errors.New("lessons config: editor update concurrency must be positive")
var ErrEditorBatchSizeInvalid = errors.New("lessons config: editor max batch size must be zero or positive")
var ErrEditorSyncTimeoutInvalid = errors.New("lessons config: editor sync timeout must be zero or positive")
var ErrLoggingProviderRequired = errors.New("lessons config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("lessons config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("lessons config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("lessons config: logging format is invalid")

const (
	StorageMemory = "memory"
	StorageBun    = "bun"

	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Config aggregates storage, editor and logging settings for the lessons module.
type Config struct {
	Storage  StorageConfig
	Cache    CacheConfig
	Editor   EditorConfig
	Markdown MarkdownConfig
	Logging  LoggingConfig
}

// StorageConfig selects where content blocks are kept.
type StorageConfig struct {
	Provider string
	Dialect  string
	DSN      string
	// Migrate applies the embedded schema when the database is opened.
	Migrate bool
}

// CacheConfig captures cache behaviour toggles for bun repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// EditorConfig tunes editor sessions.
type EditorConfig struct {
	StrictFields      bool
	SyncTimeout       time.Duration
	UpdateConcurrency int
	MaxBatchSize      int
}

// MarkdownConfig mirrors the goldmark renderer options.
type MarkdownConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig selects the logger backend.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
	// Fields are attached to every log entry.
	Fields map[string]any
}

// DefaultConfig returns an in-memory setup with go-logger output at info level.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: StorageMemory,
			Dialect:  DialectSQLite,
			Migrate:  true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Editor: EditorConfig{
			SyncTimeout:       30 * time.Second,
			UpdateConcurrency: 4,
			MaxBatchSize:      100,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Provider) {
	case StorageMemory:
	case StorageBun:
		if !isSupportedDialect(normalize(cfg.Storage.Dialect)) {
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Editor.UpdateConcurrency <= 0 {
		return ErrEditorConcurrencyInvalid
	}
	if cfg.Editor.MaxBatchSize < 0 {
		return ErrEditorBatchSizeInvalid
	}
	if cfg.Editor.SyncTimeout < 0 {
		return ErrEditorSyncTimeoutInvalid
	}

	provider := normalize(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDialect(dialect string) bool {
	switch dialect {
	case DialectSQLite, DialectPostgres:
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "none":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
