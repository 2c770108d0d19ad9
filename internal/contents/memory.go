package contents

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryContentRepository constructs an "in memory" content repository.
func NewMemoryContentRepository() ContentRepository {
	return &memoryContentRepository{
		byID:     make(map[uuid.UUID]*Content),
		byLesson: make(map[uuid.UUID][]uuid.UUID),
	}
}

type memoryContentRepository struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]*Content
	byLesson map[uuid.UUID][]uuid.UUID
}

func (m *memoryContentRepository) Create(_ context.Context, record *Content) (*Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneContent(record)
	m.byID[cloned.ID] = cloned
	m.byLesson[cloned.LessonID] = append(slices.Clone(m.byLesson[cloned.LessonID]), cloned.ID)
	return cloneContent(cloned), nil
}

func (m *memoryContentRepository) GetByID(_ context.Context, id uuid.UUID) (*Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "lesson_content", Key: id.String()}
	}
	return cloneContent(record), nil
}

func (m *memoryContentRepository) ListByLesson(_ context.Context, lessonID uuid.UUID) ([]*Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byLesson[lessonID]
	out := make([]*Content, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneContent(m.byID[id]))
	}
	sortByPosition(out)
	return out, nil
}

func (m *memoryContentRepository) Update(_ context.Context, record *Content) (*Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.byID[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "lesson_content", Key: record.ID.String()}
	}
	updated := cloneContent(record)
	// lesson and kind are fixed at creation
	updated.LessonID = current.LessonID
	updated.Kind = current.Kind
	updated.CreatedAt = current.CreatedAt
	m.byID[updated.ID] = updated
	return cloneContent(updated), nil
}

func (m *memoryContentRepository) BulkUpdatePositions(_ context.Context, records []*Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, record := range records {
		if record == nil {
			continue
		}
		current, ok := m.byID[record.ID]
		if !ok {
			return &NotFoundError{Resource: "lesson_content", Key: record.ID.String()}
		}
		current.Position = record.Position
		current.UpdatedAt = record.UpdatedAt
	}
	return nil
}

func (m *memoryContentRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "lesson_content", Key: id.String()}
	}
	delete(m.byID, id)
	m.byLesson[record.LessonID] = slices.DeleteFunc(slices.Clone(m.byLesson[record.LessonID]), func(candidate uuid.UUID) bool {
		return candidate == id
	})
	return nil
}

func cloneContent(record *Content) *Content {
	if record == nil {
		return nil
	}
	cloned := *record
	if record.Caption != nil {
		caption := *record.Caption
		cloned.Caption = &caption
	}
	return &cloned
}

func sortByPosition(records []*Content) {
	slices.SortStableFunc(records, func(a, b *Content) int {
		if a.Position != b.Position {
			return a.Position - b.Position
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
