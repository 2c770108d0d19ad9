package lessons

import "github.com/goliatone/go-lessons/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown    = runtimeconfig.ErrStorageDialectUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
	ErrEditorConcurrencyInvalid = runtimeconfig.ErrEditorConcurrencyInvalid
	ErrEditorBatchSizeInvalid   = runtimeconfig.ErrEditorBatchSizeInvalid
	ErrEditorSyncTimeoutInvalid = runtimeconfig.ErrEditorSyncTimeoutInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

const (
	StorageMemory   = runtimeconfig.StorageMemory
	StorageBun      = runtimeconfig.StorageBun
	DialectSQLite   = runtimeconfig.DialectSQLite
	DialectPostgres = runtimeconfig.DialectPostgres
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	EditorConfig   = runtimeconfig.EditorConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
