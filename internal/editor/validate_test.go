package editor

import (
	"strings"
	"testing"

	"github.com/goliatone/go-lessons/contents"
	schemavalidation "github.com/goliatone/go-lessons/internal/validation"
)

// Anything the editor lets through commit must also pass the store schema,
// otherwise the item could never be synchronized.
func TestValidateItemAgreesWithStoreSchema(t *testing.T) {
	schema := schemavalidation.NewContentValidator()

	cases := []struct {
		kind    Kind
		payload string
		caption string
	}{
		{kind: contents.KindVideo, payload: "https://cdn.example.com/v.mp4"},
		{kind: contents.KindVideo, payload: "http://cdn.example.com/v.mp4?t=10#start"},
		{kind: contents.KindVideo, payload: " https://cdn.example.com/v.mp4"},
		{kind: contents.KindVideo, payload: "https://cdn.example.com/v.mp4 "},
		{kind: contents.KindVideo, payload: "HTTPS://cdn.example.com/v.mp4"},
		{kind: contents.KindVideo, payload: "Http://cdn.example.com/v.mp4"},
		{kind: contents.KindVideo, payload: "https://"},
		{kind: contents.KindImage, payload: "/uploads/a.png"},
		{kind: contents.KindImage, payload: "/"},
		{kind: contents.KindImage, payload: "\t/uploads/a.png"},
		{kind: contents.KindImage, payload: "/uploads/a b.png"},
		{kind: contents.KindImage, payload: "/uploads/a\u00a0b.png"},
		{kind: contents.KindImage, payload: "/" + strings.Repeat("a", 2047)},
		{kind: contents.KindImage, payload: "/" + strings.Repeat("a", 2048)},
		{kind: contents.KindImage, payload: "/a.png", caption: strings.Repeat("é", 280)},
		{kind: contents.KindReading, payload: "<p>Hello</p>"},
		{kind: contents.KindReading, payload: `<img src="/a.png">`},
	}

	accepted := 0
	for _, tc := range cases {
		item := Item{ID: "tmp-1", Kind: tc.kind, Payload: tc.payload, Caption: tc.caption, Position: 1}
		if err := ValidateItem(item); err != nil {
			continue
		}
		accepted++

		doc := map[string]any{"kind": string(tc.kind), "payload": tc.payload}
		if tc.caption != "" {
			doc["caption"] = tc.caption
		}
		if err := schema.Validate(doc); err != nil {
			t.Errorf("%s %q: editor accepted a payload the store rejects: %v", tc.kind, tc.payload, err)
		}
	}
	if accepted != 8 {
		t.Fatalf("expected 8 accepted payloads, got %d", accepted)
	}
}
