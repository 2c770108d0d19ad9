package lessoncmd

import (
	"context"
	"fmt"

	"github.com/goliatone/go-lessons/internal/commands"
	"github.com/goliatone/go-lessons/internal/contents"
	"github.com/goliatone/go-lessons/internal/editor"
	"github.com/goliatone/go-lessons/internal/markdown"
	"github.com/goliatone/go-lessons/pkg/interfaces"
)

// Sessions resolves editor sessions by lesson id.
type Sessions interface {
	Session(ctx context.Context, lessonID string) (*editor.Editor, error)
	Invalidate(lessonID string) error
}

// SaveLessonHandler retries pending deletes and synchronizes the session.
type SaveLessonHandler struct {
	inner *commands.Handler[SaveLessonCommand]
}

func NewSaveLessonHandler(sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[SaveLessonCommand]) *SaveLessonHandler {
	exec := func(ctx context.Context, msg SaveLessonCommand) error {
		session, err := sessions.Session(ctx, msg.LessonID.String())
		if err != nil {
			return err
		}
		return save(ctx, session)
	}

	handlerOpts := []commands.HandlerOption[SaveLessonCommand]{
		commands.WithLogger[SaveLessonCommand](logger),
		commands.WithOperation[SaveLessonCommand]("lesson.save"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveLessonHandler{
		inner: commands.NewHandler[SaveLessonCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SaveLessonCommand].Execute.
func (h *SaveLessonHandler) Execute(ctx context.Context, msg SaveLessonCommand) error {
	return h.inner.Execute(ctx, msg)
}

func save(ctx context.Context, session *editor.Editor) error {
	retryFailures := session.RetryDeletes(ctx)
	report, err := session.Synchronize(ctx)
	if err != nil {
		return err
	}
	report.Failures = append(report.Failures, retryFailures...)
	if !report.OK() {
		return &commands.PartialSyncError{Report: report}
	}
	return nil
}

// ImportLessonHandler appends document blocks through the editor so they go
// through the same validation as interactive edits.
type ImportLessonHandler struct {
	inner *commands.Handler[ImportLessonCommand]
}

func NewImportLessonHandler(sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[ImportLessonCommand]) *ImportLessonHandler {
	exec := func(ctx context.Context, msg ImportLessonCommand) error {
		session, err := sessions.Session(ctx, msg.LessonID.String())
		if err != nil {
			return err
		}
		for _, doc := range msg.Documents {
			if err := appendDocument(ctx, session, doc); err != nil {
				return fmt.Errorf("import %s: %w", doc.Path, err)
			}
		}
		return save(ctx, session)
	}

	handlerOpts := []commands.HandlerOption[ImportLessonCommand]{
		commands.WithLogger[ImportLessonCommand](logger),
		commands.WithOperation[ImportLessonCommand]("lesson.import"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportLessonHandler{
		inner: commands.NewHandler[ImportLessonCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportLessonCommand].Execute.
func (h *ImportLessonHandler) Execute(ctx context.Context, msg ImportLessonCommand) error {
	return h.inner.Execute(ctx, msg)
}

func appendDocument(ctx context.Context, session *editor.Editor, doc *markdown.Document) error {
	if doc == nil {
		return nil
	}
	if !editor.BlankMarkup(string(doc.Body)) {
		err := appendBlock(ctx, session, contents.KindReading, doc.Caption, func(id string) editor.Action {
			return editor.ImportMarkdown{ID: id, Source: string(doc.Body)}
		})
		if err != nil {
			return err
		}
	}
	for _, ref := range doc.Media {
		kind, err := contents.ParseKind(ref.Kind)
		if err != nil {
			return err
		}
		url := ref.URL
		err = appendBlock(ctx, session, kind, ref.Caption, func(id string) editor.Action {
			return editor.UpdateField{ID: id, Field: editor.FieldPayload, Value: url}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// appendBlock adds one item, fills it and commits. A failed commit cancels
// the edit so the session is left unlocked.
func appendBlock(ctx context.Context, session *editor.Editor, kind contents.Kind, caption string, fill func(id string) editor.Action) error {
	state, err := session.Dispatch(ctx, editor.AddItem{Kind: kind})
	if err != nil {
		return err
	}
	id := state.EditingID
	steps := []editor.Action{
		fill(id),
		editor.UpdateField{ID: id, Field: editor.FieldCaption, Value: caption},
		editor.CommitEdit{ID: id},
	}
	for _, step := range steps {
		if _, err := session.Dispatch(ctx, step); err != nil {
			_, _ = session.Dispatch(ctx, editor.CancelEdit{})
			return err
		}
	}
	return nil
}

// ReorderLessonHandler reorders stored blocks directly.
type ReorderLessonHandler struct {
	inner *commands.Handler[ReorderLessonCommand]
}

func NewReorderLessonHandler(service contents.Service, sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderLessonCommand]) *ReorderLessonHandler {
	exec := func(ctx context.Context, msg ReorderLessonCommand) error {
		if err := sessions.Invalidate(msg.LessonID.String()); err != nil {
			return err
		}
		_, err := service.Reorder(ctx, contents.ReorderInput{LessonID: msg.LessonID, Order: msg.Order})
		return err
	}

	handlerOpts := []commands.HandlerOption[ReorderLessonCommand]{
		commands.WithLogger[ReorderLessonCommand](logger),
		commands.WithOperation[ReorderLessonCommand]("lesson.reorder"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReorderLessonHandler{
		inner: commands.NewHandler[ReorderLessonCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ReorderLessonCommand].Execute.
func (h *ReorderLessonHandler) Execute(ctx context.Context, msg ReorderLessonCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteContentHandler deletes a stored block directly.
type DeleteContentHandler struct {
	inner *commands.Handler[DeleteContentCommand]
}

func NewDeleteContentHandler(service contents.Service, sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteContentCommand]) *DeleteContentHandler {
	exec := func(ctx context.Context, msg DeleteContentCommand) error {
		record, err := service.Get(ctx, msg.ContentID)
		if err != nil {
			return err
		}
		if err := sessions.Invalidate(record.LessonID.String()); err != nil {
			return err
		}
		return service.Delete(ctx, msg.ContentID)
	}

	handlerOpts := []commands.HandlerOption[DeleteContentCommand]{
		commands.WithLogger[DeleteContentCommand](logger),
		commands.WithOperation[DeleteContentCommand]("content.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteContentHandler{
		inner: commands.NewHandler[DeleteContentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteContentCommand].Execute.
func (h *DeleteContentHandler) Execute(ctx context.Context, msg DeleteContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
