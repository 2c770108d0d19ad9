package lessons

import (
	"context"

	"github.com/goliatone/go-lessons/contents"
	lessoncmd "github.com/goliatone/go-lessons/internal/commands/lessons"
	internalcontents "github.com/goliatone/go-lessons/internal/contents"
	"github.com/goliatone/go-lessons/internal/di"
	"github.com/goliatone/go-lessons/internal/editor"
	"github.com/goliatone/go-lessons/internal/markdown"
	"github.com/google/uuid"
)

// ContentService exports the stored content contract.
type ContentService = internalcontents.Service

// Content exports the stored block record.
type Content = contents.Content

// Kind exports the block kind.
type Kind = contents.Kind

const (
	KindReading = contents.KindReading
	KindVideo   = contents.KindVideo
	KindImage   = contents.KindImage
)

// Editor exports the per-lesson content list editor session.
type Editor = editor.Editor

type (
	EditorState      = editor.State
	EditorItem       = editor.Item
	EditorAction     = editor.Action
	EditorRegistry   = editor.Registry
	SyncReport       = editor.SyncReport
	ValidationError  = editor.ValidationError
	RemoteSyncError  = editor.RemoteSyncError
	MarkdownDocument = markdown.Document
)

// Editor actions.
type (
	AddItem        = editor.AddItem
	EditItem       = editor.EditItem
	UpdateField    = editor.UpdateField
	ImportMarkdown = editor.ImportMarkdown
	CancelEdit     = editor.CancelEdit
	CommitEdit     = editor.CommitEdit
	DeleteItem     = editor.DeleteItem
	Reorder        = editor.Reorder
)

const (
	FieldPayload = editor.FieldPayload
	FieldCaption = editor.FieldCaption
)

var (
	ErrLockConflict   = editor.ErrLockConflict
	ErrLockHeld       = editor.ErrLockHeld
	ErrNotLocked      = editor.ErrNotLocked
	ErrSyncInFlight   = editor.ErrSyncInFlight
	ErrInvalidContent = editor.ErrInvalidContent
)

// Option customises the module wiring.
type Option = di.Option

var (
	WithBunDB          = di.WithBunDB
	WithCache          = di.WithCache
	WithLoggerProvider = di.WithLoggerProvider
	WithMigrations     = di.WithMigrations
)

// Module represents the top level lessons runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a lessons module. Embedded migrations are applied when the
// bun provider is selected and cfg.Storage.Migrate is set.
func New(cfg Config, opts ...Option) (*Module, error) {
	all := append([]Option{di.WithMigrations(GetMigrationsFS())}, opts...)
	container, err := di.NewContainer(context.Background(), cfg, all...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Contents returns the stored content service.
func (m *Module) Contents() ContentService {
	return m.container.ContentService()
}

// Sessions returns the per-lesson editor registry.
func (m *Module) Sessions() *EditorRegistry {
	return m.container.Sessions()
}

// Session returns the hydrated editor for lessonID.
func (m *Module) Session(ctx context.Context, lessonID uuid.UUID) (*Editor, error) {
	return m.container.Sessions().Session(ctx, lessonID.String())
}

// SaveLesson synchronizes the lesson's editor session with the store.
func (m *Module) SaveLesson(ctx context.Context, lessonID uuid.UUID) error {
	return m.container.SaveLessonHandler().Execute(ctx, lessoncmd.SaveLessonCommand{LessonID: lessonID})
}

// ImportLesson appends blocks built from docs and saves the lesson.
func (m *Module) ImportLesson(ctx context.Context, lessonID uuid.UUID, docs ...*MarkdownDocument) error {
	return m.container.ImportLessonHandler().Execute(ctx, lessoncmd.ImportLessonCommand{LessonID: lessonID, Documents: docs})
}

// ReorderLesson rewrites the stored order. The lesson's editor session must be idle.
func (m *Module) ReorderLesson(ctx context.Context, lessonID uuid.UUID, order []uuid.UUID) error {
	return m.container.ReorderLessonHandler().Execute(ctx, lessoncmd.ReorderLessonCommand{LessonID: lessonID, Order: order})
}

// DeleteContent removes a stored block and compacts its siblings.
func (m *Module) DeleteContent(ctx context.Context, id uuid.UUID) error {
	return m.container.DeleteContentHandler().Execute(ctx, lessoncmd.DeleteContentCommand{ContentID: id})
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	if m == nil {
		return nil
	}
	return m.container.Close()
}
