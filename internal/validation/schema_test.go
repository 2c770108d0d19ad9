package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-lessons/internal/validation"
)

func TestContentValidatorAcceptsValidPayloads(t *testing.T) {
	v := validation.NewContentValidator()

	cases := []map[string]any{
		{"kind": "reading", "payload": "<p>Intro</p>"},
		{"kind": "video", "payload": "https://cdn.example.com/v/intro.mp4", "caption": "Intro"},
		{"kind": "image", "payload": "/uploads/diagram.png"},
	}
	for _, payload := range cases {
		if err := v.Validate(payload); err != nil {
			t.Fatalf("expected %v to validate, got %v", payload, err)
		}
	}
}

func TestContentValidatorRejectsInvalidPayloads(t *testing.T) {
	v := validation.NewContentValidator()

	cases := map[string]map[string]any{
		"unknown kind":    {"kind": "quiz", "payload": "x"},
		"empty payload":   {"kind": "reading", "payload": ""},
		"missing payload": {"kind": "video"},
		"relative url":    {"kind": "video", "payload": "videos/intro.mp4"},
		"long caption":    {"kind": "image", "payload": "/a.png", "caption": strings.Repeat("x", validation.MaxCaptionLength+1)},
	}
	for name, payload := range cases {
		err := v.Validate(payload)
		if err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
		if !errors.Is(err, validation.ErrSchemaValidation) {
			t.Fatalf("%s: expected ErrSchemaValidation, got %v", name, err)
		}
		if len(validation.Issues(err)) == 0 {
			t.Fatalf("%s: expected issues to be reported", name)
		}
	}
}

func TestNewValidatorRejectsBrokenSchema(t *testing.T) {
	_, err := validation.NewValidator(map[string]any{"type": 42})
	if !errors.Is(err, validation.ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}
