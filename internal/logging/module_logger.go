package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-lessons/pkg/interfaces"
)

const (
	rootModule     = "lessons"
	editorModule   = "lessons.editor"
	contentsModule = "lessons.contents"
	storageModule  = "lessons.storage"
)

const (
	fieldLessonID = "lesson_id"
	fieldItemID   = "item_id"
	fieldAction   = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// EditorLogger returns the logger namespace reserved for editor sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// ContentsLogger returns the logger namespace reserved for the contents store.
func ContentsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentsModule)
}

// StorageLogger returns the logger namespace reserved for database bootstrap.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// WithEditorContext enriches logger with the lesson, item and action being
// processed. Empty values are skipped.
func WithEditorContext(logger interfaces.Logger, lessonID, itemID, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(lessonID); trimmed != "" {
		fields[fieldLessonID] = trimmed
	}
	if trimmed := strings.TrimSpace(itemID); trimmed != "" {
		fields[fieldItemID] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
