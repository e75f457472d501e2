// Package schemamigrationspgxstore reads the schema_migrations table.
package schemamigrationspgxstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/todolist/core/repositories/schemamigrationsrepo"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/sdk/logger"
)

// Store provides database access for SchemaMigration.
type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

// NewStore creates a new SchemaMigration store
func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

// List returns applied migrations. A database that was never migrated has no
// tracking table yet and yields an empty list.
func (s *Store) List(ctx context.Context) ([]schemamigrationsrepo.SchemaMigration, error) {
	const q = `
	SELECT version, checksum, applied_at
	FROM schema_migrations
	ORDER BY version ASC`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, s.handle(err)
	}
	defer rows.Close()

	migrations, err := pgx.CollectRows(rows, pgx.RowToStructByName[schemamigrationsrepo.SchemaMigration])
	if err != nil {
		return nil, s.handle(err)
	}

	return migrations, nil
}

func (s *Store) handle(err error) error {
	err = postgresdb.HandlePgError(err)
	if errors.Is(err, postgresdb.ErrUndefinedTable) {
		return nil
	}
	return err
}
