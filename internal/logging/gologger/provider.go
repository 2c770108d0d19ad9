package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-lessons/internal/logging"
	"github.com/goliatone/go-lessons/pkg/interfaces"
)

// RootName prefixes every logger handed out by the provider.
const RootName = "lessons"

// Config holds the go-logger options exposed through runtimeconfig.Logging.
// Focus accepts short module names ("editor") or qualified ones
// ("lessons.editor").
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
	// Fields are attached to every logger, e.g. {"service": "lessons-cli"}.
	Fields map[string]any
}

// Provider hands out go-logger backed loggers named under RootName.
type Provider struct {
	root   *glog.BaseLogger
	fields map[string]any
}

// NewProvider builds the go-logger root. Format defaults to console, the
// runtime default; level defaults to go-logger's own default.
func NewProvider(cfg Config) (*Provider, error) {
	typeOption, err := formatOption(cfg.Format)
	if err != nil {
		return nil, err
	}
	options := []glog.Option{typeOption}
	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := normalizeFocus(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root, fields: maps.Clone(cfg.Fields)}, nil
}

// GetLogger returns the logger for a module. Names outside RootName are
// qualified, so "editor" and "lessons.editor" resolve to the same logger.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	var logger interfaces.Logger = &adapter{inner: p.root.GetLogger(qualify(name))}
	return logging.WithFields(logger, p.fields)
}

func formatOption(format string) (glog.Option, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console":
		return glog.WithLoggerTypeConsole(), nil
	case "json":
		return glog.WithLoggerTypeJSON(), nil
	case "pretty":
		return glog.WithLoggerTypePretty(), nil
	}
	return nil, fmt.Errorf("logging: unsupported go-logger format %q", format)
}

func qualify(name string) string {
	name = strings.Trim(strings.TrimSpace(name), ".")
	switch {
	case name == "", name == RootName:
		return RootName
	case strings.HasPrefix(name, RootName+"."):
		return name
	}
	return RootName + "." + name
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	}
	return ""
}

func normalizeFocus(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if q := qualify(name); !slices.Contains(out, q) {
			out = append(out, q)
		}
	}
	return out
}

// adapter bridges glog loggers to interfaces.Logger. Binding a context also
// binds the fields command handlers place on it (lesson_id, command), so
// editor and store logs can be correlated with the command that caused them.
type adapter struct {
	inner glog.Logger
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return &adapter{inner: with.WithFields(maps.Clone(fields))}
	}
	if with, ok := l.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return &adapter{inner: with.With(pairs(fields)...)}
	}
	return l
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	bound := &adapter{inner: l.inner.WithContext(ctx)}
	return bound.WithFields(logging.ContextFields(ctx))
}

func pairs(fields map[string]any) []any {
	keys := slices.Sorted(maps.Keys(fields))
	out := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		out = append(out, key, fields[key])
	}
	return out
}
