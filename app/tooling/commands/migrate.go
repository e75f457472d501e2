package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/sdk/logger"
)

// Migrate creates the schema in the database.
func Migrate(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	log.InfoContext(ctx, "migration started", "step", "checking database status")

	if err := postgresdb.StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("database status check failed: %w", err)
	}

	if err := postgresdb.Migrate(ctx, log, pool); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.InfoContext(ctx, "migrations completed successfully")
	return nil
}
