package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Loader discovers lesson documents in a filesystem.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

type LoaderOption func(*Loader)

// WithPattern limits discovered files to those matching the glob (default "*.md").
func WithPattern(pattern string) LoaderOption {
	return func(l *Loader) {
		if strings.TrimSpace(pattern) != "" {
			l.pattern = pattern
		}
	}
}

func WithRecursive(recursive bool) LoaderOption {
	return func(l *Loader) {
		l.recursive = recursive
	}
}

func NewLoader(filesystem fs.FS, opts ...LoaderOption) *Loader {
	l := &Loader{fs: filesystem, pattern: "*.md"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads and parses a single document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = path.Clean(strings.TrimPrefix(name, "/"))
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}
	return ParseDocument(name, data)
}

// LoadDirectory returns every matching document under dir, ordered by the
// frontmatter order field and then by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root := path.Clean(strings.TrimPrefix(dir, "/"))
	if root == "" {
		root = "."
	}

	var docs []*Document
	walkErr := fs.WalkDir(l.fs, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if p != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		matched, err := path.Match(l.pattern, path.Base(p))
		if err != nil {
			return fmt.Errorf("markdown loader pattern %q: %w", l.pattern, err)
		}
		if !matched {
			return nil
		}
		doc, err := l.LoadFile(ctx, p)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Order != docs[j].Order {
			return docs[i].Order < docs[j].Order
		}
		return docs[i].Path < docs[j].Path
	})
	return docs, nil
}
