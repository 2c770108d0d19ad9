package contents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-lessons/internal/logging"
	schemavalidation "github.com/goliatone/go-lessons/internal/validation"
	"github.com/goliatone/go-lessons/pkg/interfaces"
)

// Service manages the stored content blocks of lessons.
type Service interface {
	ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*Content, error)
	Get(ctx context.Context, id uuid.UUID) (*Content, error)
	CreateBatch(ctx context.Context, input CreateBatchInput) (*BatchResult, error)
	Update(ctx context.Context, input UpdateContentInput) (*Content, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Remove(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, input ReorderInput) ([]*Content, error)
}

// CreateContentInput describes one block of a batched create. A zero
// Position appends the block after the lesson's current last block.
type CreateContentInput struct {
	Kind     Kind
	Payload  string
	Caption  *string
	Position int
}

// Validate checks the structural rules of the input.
func (in CreateContentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Kind, validation.Required, validation.In(KindReading, KindVideo, KindImage)),
		validation.Field(&in.Payload, validation.Required),
		validation.Field(&in.Position, validation.Min(0)),
	)
}

// CreateBatchInput creates several blocks for one lesson in submission order.
type CreateBatchInput struct {
	LessonID uuid.UUID
	Items    []CreateContentInput
}

// BatchResult reports the outcome of every submitted item by its index.
type BatchResult struct {
	Created []CreatedContent
	Failed  []FailedContent
}

// CreatedContent pairs a stored record with the index it was submitted at.
type CreatedContent struct {
	Index   int
	Content *Content
}

// FailedContent pairs a rejected submission index with its error.
type FailedContent struct {
	Index int
	Err   error
}

// UpdateContentInput patches a stored block. Nil fields are left unchanged.
type UpdateContentInput struct {
	ID       uuid.UUID
	Payload  *string
	Caption  *string
	Position *int
}

// Validate checks the structural rules of the input.
func (in UpdateContentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Payload, validation.NilOrNotEmpty),
		validation.Field(&in.Position, validation.NilOrNotEmpty, validation.Min(1)),
	)
}

// ReorderInput assigns positions 1..N following Order, which must list every
// block of the lesson exactly once.
type ReorderInput struct {
	LessonID uuid.UUID
	Order    []uuid.UUID
}

var (
	ErrLessonIDRequired  = errors.New("contents: lesson id required")
	ErrContentIDRequired = errors.New("contents: content id required")
	ErrContentInvalid    = errors.New("contents: content invalid")
	ErrBatchTooLarge     = errors.New("contents: batch exceeds maximum size")
	ErrReorderMismatch   = errors.New("contents: reorder must list every lesson content exactly once")
)

// InvalidContentError wraps the validation failure of a single block. It
// matches ErrContentInvalid with errors.Is.
type InvalidContentError struct {
	Err error
}

func (e *InvalidContentError) Error() string {
	return fmt.Sprintf("%s: %v", ErrContentInvalid, e.Err)
}

func (e *InvalidContentError) Unwrap() []error {
	return []error{ErrContentInvalid, e.Err}
}

type IDGenerator func() uuid.UUID

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger sets the logger used for store operations.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		s.logger = logging.Ensure(logger)
	}
}

// WithMaxBatchSize bounds how many items a single CreateBatch may carry.
// Zero disables the limit.
func WithMaxBatchSize(limit int) ServiceOption {
	return func(s *service) {
		if limit < 0 {
			limit = 0
		}
		s.maxBatch = limit
	}
}

// WithSchemaValidator replaces the JSON schema applied to stored blocks.
func WithSchemaValidator(validator *schemavalidation.Validator) ServiceOption {
	return func(s *service) {
		if validator != nil {
			s.schema = validator
		}
	}
}

type service struct {
	contents ContentRepository
	now      func() time.Time
	id       IDGenerator
	logger   interfaces.Logger
	schema   *schemavalidation.Validator
	maxBatch int
}

func NewService(repo ContentRepository, opts ...ServiceOption) Service {
	s := &service{
		contents: repo,
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
		schema:   schemavalidation.NewContentValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*Content, error) {
	if lessonID == uuid.Nil {
		return nil, ErrLessonIDRequired
	}
	return s.contents.ListByLesson(ctx, lessonID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Content, error) {
	if id == uuid.Nil {
		return nil, ErrContentIDRequired
	}
	return s.contents.GetByID(ctx, id)
}

// CreateBatch stores each item independently. A failing item is reported in
// BatchResult.Failed and does not prevent later items from being created.
func (s *service) CreateBatch(ctx context.Context, input CreateBatchInput) (*BatchResult, error) {
	if input.LessonID == uuid.Nil {
		return nil, ErrLessonIDRequired
	}
	if s.maxBatch > 0 && len(input.Items) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(input.Items), s.maxBatch)
	}

	result := &BatchResult{
		Created: make([]CreatedContent, 0, len(input.Items)),
	}
	if len(input.Items) == 0 {
		return result, nil
	}

	existing, err := s.contents.ListByLesson(ctx, input.LessonID)
	if err != nil {
		return nil, err
	}
	next := 1
	for _, record := range existing {
		next = max(next, record.Position+1)
	}

	logger := logging.WithFields(s.logger, map[string]any{"lesson_id": input.LessonID.String()})
	for idx, item := range input.Items {
		if err := ctx.Err(); err != nil {
			result.Failed = append(result.Failed, FailedContent{Index: idx, Err: err})
			continue
		}

		caption := normalizeCaption(item.Caption)
		if err := s.validateCreate(item, caption); err != nil {
			logger.Debug("contents.create.rejected", "index", idx, "error", err)
			result.Failed = append(result.Failed, FailedContent{Index: idx, Err: err})
			continue
		}

		position := item.Position
		if position <= 0 {
			position = next
		}

		now := s.now()
		record := &Content{
			ID:        s.id(),
			LessonID:  input.LessonID,
			Kind:      item.Kind,
			Payload:   item.Payload,
			Caption:   caption,
			Anchor:    anchorFor(caption),
			Position:  position,
			CreatedAt: now,
			UpdatedAt: now,
		}

		created, err := s.contents.Create(ctx, record)
		if err != nil {
			logger.Warn("contents.create.failed", "index", idx, "error", err)
			result.Failed = append(result.Failed, FailedContent{Index: idx, Err: err})
			continue
		}
		next = max(next, position+1)
		result.Created = append(result.Created, CreatedContent{Index: idx, Content: created})
	}

	logger.Debug("contents.create.batch", "created", len(result.Created), "failed", len(result.Failed))
	return result, nil
}

func (s *service) Update(ctx context.Context, input UpdateContentInput) (*Content, error) {
	if input.ID == uuid.Nil {
		return nil, ErrContentIDRequired
	}
	if err := input.Validate(); err != nil {
		return nil, &InvalidContentError{Err: err}
	}

	record, err := s.contents.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Payload != nil {
		record.Payload = *input.Payload
	}
	if input.Caption != nil {
		record.Caption = normalizeCaption(input.Caption)
		record.Anchor = anchorFor(record.Caption)
	}
	if input.Position != nil {
		record.Position = *input.Position
	}
	if err := s.schema.Validate(schemaPayload(record.Kind, record.Payload, record.Caption)); err != nil {
		return nil, &InvalidContentError{Err: err}
	}

	record.UpdatedAt = s.now()
	updated, err := s.contents.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("contents.update", "content_id", updated.ID.String(), "position", updated.Position)
	return updated, nil
}

// Delete removes a block and compacts the positions of its remaining siblings.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrContentIDRequired
	}
	record, err := s.contents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.contents.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("contents.delete", "content_id", id.String(), "lesson_id", record.LessonID.String())
	return s.compactPositions(ctx, record.LessonID)
}

// Remove deletes a block and leaves sibling positions alone. Callers that
// track positions themselves (the editor) use it so their numbering stays
// authoritative.
func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrContentIDRequired
	}
	if err := s.contents.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("contents.remove", "content_id", id.String())
	return nil
}

func (s *service) Reorder(ctx context.Context, input ReorderInput) ([]*Content, error) {
	if input.LessonID == uuid.Nil {
		return nil, ErrLessonIDRequired
	}
	records, err := s.contents.ListByLesson(ctx, input.LessonID)
	if err != nil {
		return nil, err
	}
	if len(input.Order) != len(records) {
		return nil, fmt.Errorf("%w: expected %d items, got %d", ErrReorderMismatch, len(records), len(input.Order))
	}

	index := make(map[uuid.UUID]*Content, len(records))
	for _, record := range records {
		index[record.ID] = record
	}

	ordered := make([]*Content, 0, len(records))
	seen := make(map[uuid.UUID]struct{}, len(records))
	for _, id := range input.Order {
		record, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown content %s", ErrReorderMismatch, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate content %s", ErrReorderMismatch, id)
		}
		seen[id] = struct{}{}
		ordered = append(ordered, record)
	}

	if err := s.applyPositions(ctx, ordered); err != nil {
		return nil, err
	}
	return ordered, nil
}

func (s *service) compactPositions(ctx context.Context, lessonID uuid.UUID) error {
	siblings, err := s.contents.ListByLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	return s.applyPositions(ctx, siblings)
}

func (s *service) applyPositions(ctx context.Context, ordered []*Content) error {
	dirty := make([]*Content, 0, len(ordered))
	for idx, record := range ordered {
		want := idx + 1
		if record.Position == want {
			continue
		}
		record.Position = want
		record.UpdatedAt = s.now()
		dirty = append(dirty, record)
	}
	if len(dirty) == 0 {
		return nil
	}
	return s.contents.BulkUpdatePositions(ctx, dirty)
}

func (s *service) validateCreate(item CreateContentInput, caption *string) error {
	if err := item.Validate(); err != nil {
		return &InvalidContentError{Err: err}
	}
	if err := s.schema.Validate(schemaPayload(item.Kind, item.Payload, caption)); err != nil {
		return &InvalidContentError{Err: err}
	}
	return nil
}

func schemaPayload(kind Kind, payload string, caption *string) map[string]any {
	out := map[string]any{
		"kind":    string(kind),
		"payload": payload,
	}
	if caption != nil {
		out["caption"] = *caption
	}
	return out
}

func normalizeCaption(caption *string) *string {
	if caption == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*caption)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func anchorFor(caption *string) string {
	if caption == nil {
		return ""
	}
	anchor, err := slug.Normalize(*caption)
	if err != nil {
		return ""
	}
	return anchor
}
