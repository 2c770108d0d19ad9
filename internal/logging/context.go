package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-lessons/pkg/interfaces"
)

type contextKey string

const contextFieldsKey contextKey = "lessons.logging.fields"

// ContextWithFields returns a context carrying structured logging fields.
// Fields already present on ctx are merged, with fields taking precedence.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}

	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextFields returns a copy of the fields stored on ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// FromContext applies the fields stored on ctx to logger and binds ctx.
func FromContext(ctx context.Context, logger interfaces.Logger) interfaces.Logger {
	logger = Ensure(logger)
	if ctx == nil {
		return logger
	}
	return WithFields(logger, ContextFields(ctx)).WithContext(ctx)
}
