package testsupport

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a shared-cache in-memory SQLite database. Passing a
// name isolates the database from other callers in the same process.
func NewSQLiteMemoryDB(name ...string) (*sql.DB, error) {
	label := "memdb"
	if len(name) > 0 && strings.TrimSpace(name[0]) != "" {
		label = strings.TrimSpace(name[0])
	}
	return sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", label))
}
