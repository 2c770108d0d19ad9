package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := LessonUUID("Intro-To-Go")
	second := LessonUUID(" intro-to-go ")
	if first != second {
		t.Fatalf("expected normalized codes to match: %s != %s", first, second)
	}
	if first == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
	if UUID("   ") != uuid.Nil {
		t.Fatalf("expected blank key to map to nil uuid")
	}
}

func TestParseLesson(t *testing.T) {
	id := uuid.New()
	if got := ParseLesson(id.String()); got != id {
		t.Fatalf("expected uuid passthrough, got %s", got)
	}
	if got := ParseLesson("algebra-1"); got != LessonUUID("algebra-1") {
		t.Fatalf("expected code to hash, got %s", got)
	}
}

func TestProvisionalSequence(t *testing.T) {
	seen := map[string]struct{}{}
	for n := uint64(1); n <= 50; n++ {
		id := ProvisionalID("lesson-a", n)
		if !IsProvisional(id) {
			t.Fatalf("expected provisional prefix, got %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate provisional id %q", id)
		}
		seen[id] = struct{}{}
	}

	if replay := ProvisionalID("lesson-a", 1); replay != ProvisionalID(" lesson-a ", 1) {
		t.Fatalf("expected deterministic ids, got %q", replay)
	}
	if ProvisionalID("lesson-a", 1) == ProvisionalID("lesson-b", 1) {
		t.Fatalf("expected scopes to produce distinct ids")
	}
	if IsProvisional(uuid.NewString()) {
		t.Fatalf("durable ids must not look provisional")
	}
}
