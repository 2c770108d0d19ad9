package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-lessons/internal/runtimeconfig"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var ErrUnsupportedDialect = errors.New("storage: unsupported dialect")

// Open connects to the database described by cfg and wraps it with the
// matching bun dialect.
func Open(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	switch strings.ToLower(strings.TrimSpace(cfg.Dialect)) {
	case runtimeconfig.DialectSQLite, "":
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db := bun.NewDB(sqldb, sqlitedialect.New())
		if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
			db.SetMaxOpenConns(1)
		}
		return db, nil
	case runtimeconfig.DialectPostgres:
		sqldb, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, cfg.Dialect)
	}
}

// DialectName reports the runtimeconfig dialect for an open database.
func DialectName(db *bun.DB) string {
	if db == nil {
		return ""
	}
	if db.Dialect().Name() == dialect.PG {
		return runtimeconfig.DialectPostgres
	}
	return runtimeconfig.DialectSQLite
}
