package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/docmind/internal/client/migrations"
	"github.com/dmitrijs2005/docmind/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// RunMigrations applies the embedded schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite file at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// OpenRepository is InitDatabase plus a metadata repository over it. The
// returned close func releases the file.
func OpenRepository(ctx context.Context, dsn string) (metadata.Repository, func() error, error) {
	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open state store %s: %w", dsn, err)
	}
	return metadata.NewSQLiteRepository(db), db.Close, nil
}
