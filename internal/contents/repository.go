package contents

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewContentRepository creates a go-repository-bun repository for Content records.
func NewContentRepository(db *bun.DB) repository.Repository[*Content] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Content]{
		NewRecord:          func() *Content { return &Content{} },
		GetID:              func(c *Content) uuid.UUID { return c.ID },
		SetID:              func(c *Content, id uuid.UUID) { c.ID = id },
		GetIdentifier:      func() string { return "" },
		GetIdentifierValue: func(*Content) string { return "" },
	})
}
