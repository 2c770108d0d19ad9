package contentstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-lessons/internal/contents"
	"github.com/goliatone/go-lessons/internal/editor"
	"github.com/goliatone/go-lessons/internal/logging"
	"github.com/goliatone/go-lessons/pkg/interfaces"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Adapter exposes the contents service through the editor's Store contract.
type Adapter struct {
	service contents.Service
	logger  interfaces.Logger
}

var _ editor.Store = (*Adapter)(nil)

type Option func(*Adapter)

func WithLogger(logger interfaces.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func New(service contents.Service, opts ...Option) *Adapter {
	a := &Adapter{service: service, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) CreateBatch(ctx context.Context, lessonID string, items []editor.NewContent) (editor.BatchResult, error) {
	lesson, err := parseID("lesson", lessonID)
	if err != nil {
		return editor.BatchResult{}, err
	}

	input := contents.CreateBatchInput{
		LessonID: lesson,
		Items:    make([]contents.CreateContentInput, len(items)),
	}
	for idx, item := range items {
		input.Items[idx] = contents.CreateContentInput{
			Kind:     item.Kind,
			Payload:  item.Payload,
			Caption:  optional(item.Caption),
			Position: item.Position,
		}
	}

	result, err := a.service.CreateBatch(ctx, input)
	if err != nil {
		return editor.BatchResult{}, classify(err)
	}

	out := editor.BatchResult{
		Created: make([]editor.CreatedContent, 0, len(result.Created)),
		Failed:  make([]editor.FailedContent, 0, len(result.Failed)),
	}
	for _, created := range result.Created {
		out.Created = append(out.Created, editor.CreatedContent{Index: created.Index, ID: created.Content.ID.String()})
	}
	for _, failed := range result.Failed {
		out.Failed = append(out.Failed, editor.FailedContent{Index: failed.Index, Err: classify(failed.Err)})
	}
	a.logger.Debug("contentstore.create_batch", "lesson_id", lessonID, "created", len(out.Created), "failed", len(out.Failed))
	return out, nil
}

func (a *Adapter) UpdateContent(ctx context.Context, id string, update editor.ContentUpdate) error {
	contentID, err := parseID("content", id)
	if err != nil {
		return err
	}
	payload := update.Payload
	caption := update.Caption
	position := update.Position
	_, err = a.service.Update(ctx, contents.UpdateContentInput{
		ID:       contentID,
		Payload:  &payload,
		Caption:  &caption,
		Position: &position,
	})
	return classify(err)
}

// DeleteContent treats an already missing record as deleted so retries are safe.
func (a *Adapter) DeleteContent(ctx context.Context, id string) error {
	contentID, err := parseID("content", id)
	if err != nil {
		return err
	}
	err = a.service.Remove(ctx, contentID)
	var notFound *contents.NotFoundError
	if errors.As(err, &notFound) {
		a.logger.Debug("contentstore.delete.already_gone", "item_id", id)
		return nil
	}
	return classify(err)
}

func (a *Adapter) ListByLesson(ctx context.Context, lessonID string) ([]editor.StoredContent, error) {
	lesson, err := parseID("lesson", lessonID)
	if err != nil {
		return nil, err
	}
	records, err := a.service.ListByLesson(ctx, lesson)
	if err != nil {
		return nil, classify(err)
	}
	out := make([]editor.StoredContent, 0, len(records))
	for _, record := range records {
		stored := editor.StoredContent{
			ID:       record.ID.String(),
			Kind:     record.Kind,
			Payload:  record.Payload,
			Position: record.Position,
		}
		if record.Caption != nil {
			stored.Caption = *record.Caption
		}
		out = append(out, stored)
	}
	return out, nil
}

func parseID(label, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, &editor.RejectedError{Err: fmt.Errorf("invalid %s id %q: %w", label, raw, err)}
	}
	return id, nil
}

// classify marks failures caused by the payload itself as rejected. Anything
// else is left as is and surfaces as a network failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if rejected(err) {
		return &editor.RejectedError{Err: err}
	}
	return err
}

func rejected(err error) bool {
	var (
		notFound *contents.NotFoundError
		vErrs    validation.Errors
		pgErr    *pgconn.PgError
	)
	switch {
	case errors.Is(err, contents.ErrContentInvalid),
		errors.Is(err, contents.ErrBatchTooLarge),
		errors.Is(err, contents.ErrLessonIDRequired),
		errors.Is(err, contents.ErrContentIDRequired):
		return true
	case errors.As(err, &notFound), errors.As(err, &vErrs):
		return true
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		return true
	case errors.As(err, &pgErr):
		// class 23: integrity constraint violation
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}

func optional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
