package storage

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

const migrationsTable = "lesson_schema_migrations"

// Migrate applies the *.up.sql files found under dialect/ in fsys, in lexical
// order, skipping files already recorded. It returns the names it applied.
func Migrate(ctx context.Context, db *bun.DB, fsys fs.FS, dialect string) ([]string, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationsTable+` (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("storage: create migrations table: %w", err)
	}

	files, err := fs.Glob(fsys, path.Join(dialect, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("storage: list migrations: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no migrations for %q", ErrUnsupportedDialect, dialect)
	}
	sort.Strings(files)

	var done []string
	if err := db.NewRaw("SELECT name FROM " + migrationsTable).Scan(ctx, &done); err != nil {
		return nil, fmt.Errorf("storage: read applied migrations: %w", err)
	}
	applied := make(map[string]struct{}, len(done))
	for _, name := range done {
		applied[name] = struct{}{}
	}

	var ran []string
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".up.sql")
		if _, ok := applied[name]; ok {
			continue
		}
		body, err := fs.ReadFile(fsys, file)
		if err != nil {
			return ran, fmt.Errorf("storage: read %s: %w", file, err)
		}
		err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, string(body)); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, "INSERT INTO "+migrationsTable+" (name, applied_at) VALUES (?, ?)", name, time.Now().UTC())
			return err
		})
		if err != nil {
			return ran, fmt.Errorf("storage: apply %s: %w", name, err)
		}
		ran = append(ran, name)
	}
	return ran, nil
}
