package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/todolist/core/repositories/schemamigrationsrepo"
	"github.com/jrazmi/todolist/core/repositories/schemamigrationsrepo/stores/schemamigrationspgxstore"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/schema"
	"github.com/jrazmi/todolist/sdk/logger"
)

// Status pings the database and prints which migrations have been applied.
func Status(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := postgresdb.StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("database status check failed: %w", err)
	}
	log.InfoContext(ctx, "database reachable")

	known, err := postgresdb.MigrationFiles(schema.MigrationsFS, postgresdb.MigrationsDir)
	if err != nil {
		return fmt.Errorf("reading embedded migrations: %w", err)
	}

	repo := schemamigrationsrepo.NewRepository(log, schemamigrationspgxstore.NewStore(log, pool))
	statuses, err := repo.Status(ctx, known)
	if err != nil {
		return err
	}

	return WriteStatus(out, statuses)
}

// WriteStatus renders migration statuses as an aligned table.
func WriteStatus(out io.Writer, statuses []schemamigrationsrepo.Status) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tCHECKSUM")

	for _, st := range statuses {
		if st.Applied == nil {
			fmt.Fprintf(tw, "%s\tpending\t-\t-\n", st.Version)
			continue
		}
		fmt.Fprintf(tw, "%s\tapplied\t%s\t%.8s\n", st.Version, st.Applied.AppliedAt.Format(time.RFC3339), st.Applied.Checksum)
	}

	return tw.Flush()
}
