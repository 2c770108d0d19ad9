package di

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/goliatone/go-lessons/internal/adapters/contentstore"
	"github.com/goliatone/go-lessons/internal/commands"
	lessoncmd "github.com/goliatone/go-lessons/internal/commands/lessons"
	"github.com/goliatone/go-lessons/internal/contents"
	"github.com/goliatone/go-lessons/internal/editor"
	"github.com/goliatone/go-lessons/internal/logging"
	"github.com/goliatone/go-lessons/internal/logging/gologger"
	"github.com/goliatone/go-lessons/internal/markdown"
	"github.com/goliatone/go-lessons/internal/runtimeconfig"
	"github.com/goliatone/go-lessons/internal/storage"
	"github.com/goliatone/go-lessons/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	migrations     fs.FS

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	contentRepo contents.ContentRepository
	contentSvc  contents.Service
	store       *contentstore.Adapter
	renderer    *markdown.Renderer
	sessions    *editor.Registry

	saveLesson    *lessoncmd.SaveLessonHandler
	importLesson  *lessoncmd.ImportLessonHandler
	reorderLesson *lessoncmd.ReorderLessonHandler
	deleteContent *lessoncmd.DeleteContentHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an open database instead of opening one from config.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the cache service used by bun repositories.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithMigrations sets the filesystem holding <dialect>/*.up.sql files.
func WithMigrations(fsys fs.FS) Option {
	return func(c *Container) {
		c.migrations = fsys
	}
}

// WithContentRepository replaces the repository chosen from config.
func WithContentRepository(repo contents.ContentRepository) Option {
	return func(c *Container) {
		c.contentRepo = repo
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(ctx); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureServices()
	c.configureCommands()
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), "none") {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
		Fields:    c.Config.Logging.Fields,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureStorage(ctx context.Context) error {
	if c.contentRepo != nil {
		return nil
	}
	if c.bunDB == nil {
		if !strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), runtimeconfig.StorageBun) {
			return nil
		}
		db, err := storage.Open(c.Config.Storage)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if c.Config.Storage.Migrate && c.migrations != nil {
		applied, err := storage.Migrate(ctx, c.bunDB, c.migrations, storage.DialectName(c.bunDB))
		if err != nil {
			c.Close()
			return fmt.Errorf("di: migrate: %w", err)
		}
		if len(applied) > 0 {
			logging.StorageLogger(c.loggerProvider).Info("storage.migrated", "applied", applied)
		}
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.contentRepo != nil {
		return
	}
	if c.bunDB != nil {
		c.contentRepo = contents.NewBunContentRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}
	c.contentRepo = contents.NewMemoryContentRepository()
}

func (c *Container) configureServices() {
	serviceOpts := []contents.ServiceOption{
		contents.WithLogger(logging.ContentsLogger(c.loggerProvider)),
	}
	if c.Config.Editor.MaxBatchSize > 0 {
		serviceOpts = append(serviceOpts, contents.WithMaxBatchSize(c.Config.Editor.MaxBatchSize))
	}
	c.contentSvc = contents.NewService(c.contentRepo, serviceOpts...)
	c.store = contentstore.New(c.contentSvc, contentstore.WithLogger(logging.StorageLogger(c.loggerProvider)))
	c.renderer = markdown.NewRenderer(markdown.Options{
		Extensions: c.Config.Markdown.Extensions,
		HardWraps:  c.Config.Markdown.HardWraps,
		SafeMode:   c.Config.Markdown.SafeMode,
	})
	c.sessions = editor.NewRegistry(c.store,
		editor.WithLogger(logging.EditorLogger(c.loggerProvider)),
		editor.WithStrictFields(c.Config.Editor.StrictFields),
		editor.WithRenderer(c.renderer),
		editor.WithUpdateConcurrency(c.Config.Editor.UpdateConcurrency),
		editor.WithMaxBatchSize(c.Config.Editor.MaxBatchSize),
	)
}

func (c *Container) configureCommands() {
	logger := commands.CommandLogger(c.loggerProvider, "lessons")
	timeout := c.Config.Editor.SyncTimeout

	c.saveLesson = lessoncmd.NewSaveLessonHandler(c.sessions, logger,
		commands.WithTimeout[lessoncmd.SaveLessonCommand](timeout))
	c.importLesson = lessoncmd.NewImportLessonHandler(c.sessions, logger,
		commands.WithTimeout[lessoncmd.ImportLessonCommand](timeout))
	c.reorderLesson = lessoncmd.NewReorderLessonHandler(c.contentSvc, c.sessions, logger)
	c.deleteContent = lessoncmd.NewDeleteContentHandler(c.contentSvc, c.sessions, logger)
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	return c.bunDB.Close()
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

func (c *Container) ContentService() contents.Service {
	return c.contentSvc
}

func (c *Container) ContentStore() editor.Store {
	return c.store
}

func (c *Container) Renderer() *markdown.Renderer {
	return c.renderer
}

func (c *Container) Sessions() *editor.Registry {
	return c.sessions
}

func (c *Container) SaveLessonHandler() *lessoncmd.SaveLessonHandler {
	return c.saveLesson
}

func (c *Container) ImportLessonHandler() *lessoncmd.ImportLessonHandler {
	return c.importLesson
}

func (c *Container) ReorderLessonHandler() *lessoncmd.ReorderLessonHandler {
	return c.reorderLesson
}

func (c *Container) DeleteContentHandler() *lessoncmd.DeleteContentHandler {
	return c.deleteContent
}
