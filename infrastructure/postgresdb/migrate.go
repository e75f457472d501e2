package postgresdb

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/todolist/schema"
	"github.com/jrazmi/todolist/sdk/logger"
)

// ErrChecksumMismatch is returned when an applied migration was edited afterwards.
var ErrChecksumMismatch = errors.New("migration checksum mismatch")

// MigrationsDir is the directory inside schema.MigrationsFS holding the SQL files.
const MigrationsDir = "pgmigrations"

// Migrate applies every pending migration under schema/pgmigrations in
// filename order. Applied versions are tracked in schema_migrations along with
// a checksum of their content. Forward only.
func Migrate(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
	if err := StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	log.InfoContext(ctx, "migrations: running", "dir", MigrationsDir)

	applied, err := runMigrations(ctx, log, pool, schema.MigrationsFS, MigrationsDir)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	log.InfoContext(ctx, "migrations: complete", "applied", applied)
	return nil
}

func runMigrations(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool, fsys fs.FS, dir string) (int, error) {
	if err := createMigrationsTable(ctx, pool); err != nil {
		return 0, fmt.Errorf("create migrations table: %w", err)
	}

	files, err := MigrationFiles(fsys, dir)
	if err != nil {
		return 0, fmt.Errorf("get migration files: %w", err)
	}

	var applied int
	for _, file := range files {
		ok, err := applyMigration(ctx, log, pool, fsys, path.Join(dir, file))
		if err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", file, err)
		}
		if ok {
			applied++
		}
	}

	return applied, nil
}

func createMigrationsTable(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    VARCHAR(255) PRIMARY KEY,
		checksum   VARCHAR(64) NOT NULL,
		applied_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`

	_, err := pool.Exec(ctx, q)
	return err
}

// MigrationFiles returns the sorted .sql filenames found directly in dir.
func MigrationFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}

	sort.Strings(files)
	return files, nil
}

// Checksum returns the hex sha256 of a migration's content.
func Checksum(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// applyMigration reports whether the migration was newly applied.
func applyMigration(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool, fsys fs.FS, file string) (bool, error) {
	version := path.Base(file)

	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return false, fmt.Errorf("read migration file: %w", err)
	}
	checksum := Checksum(content)

	var existing string
	err = pool.QueryRow(ctx, "SELECT checksum FROM schema_migrations WHERE version = $1", version).Scan(&existing)
	switch {
	case err == nil:
		if existing != checksum {
			return false, fmt.Errorf("%w: %s expected %s got %s", ErrChecksumMismatch, version, existing, checksum)
		}
		log.DebugContext(ctx, "migrations: already applied", "version", version)
		return false, nil

	case !errors.Is(err, pgx.ErrNoRows):
		return false, fmt.Errorf("lookup migration: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return false, fmt.Errorf("execute migration: %w", err)
	}

	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)", version, checksum); err != nil {
		return false, fmt.Errorf("record migration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}

	log.InfoContext(ctx, "migrations: applied", "version", version, "checksum", checksum[:8])
	return true, nil
}
