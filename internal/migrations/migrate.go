package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

// Supported goose dialects. Each has its own directory of migrations.
const (
	SQLite   = "sqlite3"
	Postgres = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// goose keeps its base FS and dialect in package state.
var mu sync.Mutex

var dirs = map[string]string{
	SQLite:   "sqlite",
	Postgres: "postgres",
}

// Up runs all pending embedded migrations for dialect.
func Up(db *sql.DB, dialect string) error {
	dir, ok := dirs[dialect]
	if !ok {
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(files)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}
