package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// LessonUUID maps a human lesson code (for example a course slug) to a stable id.
func LessonUUID(lessonCode string) uuid.UUID {
	return UUID("go-lessons:lesson:" + strings.ToLower(strings.TrimSpace(lessonCode)))
}

// ParseLesson accepts either a UUID or a lesson code.
func ParseLesson(raw string) uuid.UUID {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := uuid.Parse(trimmed); err == nil {
		return parsed
	}
	return LessonUUID(trimmed)
}
