package contents

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ContentRepository exposes persistence operations for lesson content blocks.
// ListByLesson returns records ordered by position.
type ContentRepository interface {
	Create(ctx context.Context, record *Content) (*Content, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Content, error)
	ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*Content, error)
	Update(ctx context.Context, record *Content) (*Content, error)
	BulkUpdatePositions(ctx context.Context, records []*Content) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a content record cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
