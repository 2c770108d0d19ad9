package contents

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Kind identifies the body carried by a lesson content block.
type Kind string

const (
	// KindReading carries HTML markup.
	KindReading Kind = "reading"
	// KindVideo carries a video URL.
	KindVideo Kind = "video"
	// KindImage carries an image URL.
	KindImage Kind = "image"
)

// ErrUnknownKind is returned when a kind outside the closed set is requested.
var ErrUnknownKind = errors.New("contents: unknown kind")

// Kinds lists every supported kind in display order.
func Kinds() []Kind {
	return []Kind{KindReading, KindVideo, KindImage}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindReading, KindVideo, KindImage:
		return true
	default:
		return false
	}
}

// ParseKind normalises user input ("Reading", " video ") into a Kind.
func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
	return kind, nil
}

// Content is a persisted content block attached to a lesson.
type Content struct {
	bun.BaseModel `bun:"table:lesson_contents,alias:lc"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	LessonID  uuid.UUID `bun:"lesson_id,notnull,type:uuid" json:"lesson_id"`
	Kind      Kind      `bun:"kind,notnull" json:"kind"`
	Payload   string    `bun:"payload,notnull" json:"payload"`
	Caption   *string   `bun:"caption" json:"caption,omitempty"`
	Anchor    string    `bun:"anchor" json:"anchor,omitempty"`
	Position  int       `bun:"position,notnull,default:1" json:"position"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
