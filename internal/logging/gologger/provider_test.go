package gologger

import (
	"context"
	"testing"

	"github.com/goliatone/go-lessons/internal/logging"
	"github.com/goliatone/go-lessons/pkg/interfaces"
)

func TestNewProviderCreatesLogger(t *testing.T) {
	p, err := NewProvider(Config{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	logger := p.GetLogger("lessons.test")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}

	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		t.Fatalf("expected adapter to support fields, got %T", logger)
	}
	child := fieldsLogger.WithFields(map[string]any{"module": "lessons.test"})
	if child == nil {
		t.Fatal("expected WithFields to return logger")
	}
	child.Debug("adapter.initialised")
}

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNilProviderReturnsNoOp(t *testing.T) {
	var p *Provider
	if logger := p.GetLogger("lessons"); logger == nil {
		t.Fatal("expected no-op logger from nil provider")
	}
}

func TestNormalizeLevel(t *testing.T) {
	cases := map[string]bool{
		"trace":   true,
		"DEBUG":   true,
		" warn ":  true,
		"warning": true,
		"verbose": false,
		"":        false,
	}
	for input, known := range cases {
		got := normalizeLevel(input)
		if known && got == "" {
			t.Fatalf("expected %q to map to a go-logger level", input)
		}
		if !known && got != "" {
			t.Fatalf("expected %q to be ignored, got %q", input, got)
		}
	}
}

func TestQualifyModuleNames(t *testing.T) {
	cases := map[string]string{
		"":                 RootName,
		"lessons":          RootName,
		"editor":           "lessons.editor",
		" lessons.editor ": "lessons.editor",
		"commands.lessons": "lessons.commands.lessons",
		".storage.":        "lessons.storage",
	}
	for input, want := range cases {
		if got := qualify(input); got != want {
			t.Fatalf("qualify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeFocusQualifiesAndDedupes(t *testing.T) {
	got := normalizeFocus([]string{"editor", "lessons.editor", " ", "contents"})
	want := []string{"lessons.editor", "lessons.contents"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestProviderBindsContextFields(t *testing.T) {
	p, err := NewProvider(Config{Level: "error", Fields: map[string]any{"service": "lessons-test"}})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"lesson_id": "l-1"})
	logger := p.GetLogger("editor").WithContext(ctx)
	if _, ok := logger.(*adapter); !ok {
		t.Fatalf("expected go-logger adapter, got %T", logger)
	}
	logger.Info("editor.sync.summary")
}
