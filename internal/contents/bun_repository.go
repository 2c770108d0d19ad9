package contents

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunContentRepository implements ContentRepository with optional caching.
type BunContentRepository struct {
	repo repository.Repository[*Content]
}

// NewBunContentRepository creates a content repository without caching.
func NewBunContentRepository(db *bun.DB) *BunContentRepository {
	return NewBunContentRepositoryWithCache(db, nil, nil)
}

// NewBunContentRepositoryWithCache creates a content repository backed by the
// provided cache service.
func NewBunContentRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunContentRepository {
	base := NewContentRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunContentRepository{repo: base}
}

var _ ContentRepository = (*BunContentRepository)(nil)

func (r *BunContentRepository) Create(ctx context.Context, record *Content) (*Content, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "lesson_content", record.ID.String())
	}
	return created, nil
}

func (r *BunContentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Content, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "lesson_content", id.String())
	}
	return record, nil
}

func (r *BunContentRepository) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*Content, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.lesson_id = ?", lessonID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.position ASC, ?TableAlias.created_at ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "lesson_content", lessonID.String())
	}
	return records, nil
}

func (r *BunContentRepository) Update(ctx context.Context, record *Content) (*Content, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"payload",
			"caption",
			"anchor",
			"position",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "lesson_content", record.ID.String())
	}
	return updated, nil
}

func (r *BunContentRepository) BulkUpdatePositions(ctx context.Context, records []*Content) error {
	if len(records) == 0 {
		return nil
	}
	_, err := r.repo.UpdateMany(ctx, records,
		repository.UpdateColumns("position", "updated_at"),
	)
	return err
}

func (r *BunContentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Content{ID: id}); err != nil {
		return mapRepositoryError(err, "lesson_content", id.String())
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
