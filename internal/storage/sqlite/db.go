package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const dsnParams = "?_journal_mode=WAL&_busy_timeout=5000"

// NewDB opens the database file, creating its directory when needed, and
// applies all pending migrations.
func NewDB(ctx context.Context, dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create db directory: %w", core.ErrStorage, err)
	}

	db, err := sql.Open("sqlite3", dbPath+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", core.ErrStorage, err)
	}

	// SQLite serializes writers anyway; a single connection keeps
	// read-after-write ordering simple for concurrent requests.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %w", core.ErrStorage, err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to run migrations: %w", core.ErrStorage, err)
	}

	log.FromCtx(ctx).Debug().Str("path", dbPath).Msg("database ready")
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(log.NewGooseLoggerFromCtx(ctx))

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}
