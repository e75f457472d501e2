// Package schemamigrationsrepo reports which embedded migrations have been
// applied to a database.
package schemamigrationsrepo

import (
	"context"
	"fmt"

	"github.com/jrazmi/todolist/sdk/logger"
)

// Storer defines the data storage interface for applied migrations.
type Storer interface {
	List(ctx context.Context) ([]SchemaMigration, error)
}

// Repository provides access to schema migration records.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new SchemaMigration repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns every applied migration ordered by version.
func (r *Repository) List(ctx context.Context) ([]SchemaMigration, error) {
	migrations, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schema migrations: %w", err)
	}

	return migrations, nil
}

// Status matches the known migration files against what has been applied.
// Versions that are applied but no longer shipped are appended at the end.
func (r *Repository) Status(ctx context.Context, known []string) ([]Status, error) {
	applied, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	byVersion := make(map[string]SchemaMigration, len(applied))
	for _, m := range applied {
		byVersion[m.Version] = m
	}

	out := make([]Status, 0, len(known))
	for _, v := range known {
		st := Status{Version: v}
		if m, ok := byVersion[v]; ok {
			st.Applied = &m
			delete(byVersion, v)
		}
		out = append(out, st)
	}

	for _, m := range applied {
		if _, orphan := byVersion[m.Version]; orphan {
			out = append(out, Status{Version: m.Version, Applied: &m})
		}
	}

	return out, nil
}
