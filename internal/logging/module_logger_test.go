package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-lessons/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "lessons.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModuleField(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, editorModule)

	if len(provider.requested) != 1 || provider.requested[0] != editorModule {
		t.Fatalf("expected module %s, got %v", editorModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != editorModule {
		t.Fatalf("expected module field %s, got %v", editorModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = ModuleLogger(provider, "")
	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedLoggersRequestTheirModules(t *testing.T) {
	cases := map[string]func(interfaces.LoggerProvider) interfaces.Logger{
		editorModule:   EditorLogger,
		contentsModule: ContentsLogger,
		storageModule:  StorageLogger,
	}
	for module, build := range cases {
		provider := &stubProvider{logger: &recordingLogger{}}
		_ = build(provider)
		if len(provider.requested) == 0 || provider.requested[0] != module {
			t.Fatalf("expected %s request, got %v", module, provider.requested)
		}
	}
}

func TestWithEditorContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithEditorContext(rec, "lesson-1", " ", "reorder")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldLessonID] != "lesson-1" || fields[fieldAction] != "reorder" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if _, ok := fields[fieldItemID]; ok {
		t.Fatalf("expected blank item id to be skipped, got %v", fields)
	}
}

func TestFromContextMergesStoredFields(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "r-1"})
	ctx = ContextWithFields(ctx, map[string]any{"lesson_id": "l-1"})

	rec := &recordingLogger{}
	_ = FromContext(ctx, rec)

	if len(rec.fields) != 1 || rec.fields[0]["request_id"] != "r-1" || rec.fields[0]["lesson_id"] != "l-1" {
		t.Fatalf("expected merged context fields, got %v", rec.fields)
	}
	if len(rec.contexts) != 1 {
		t.Fatalf("expected context to be bound once, got %d", len(rec.contexts))
	}
}
