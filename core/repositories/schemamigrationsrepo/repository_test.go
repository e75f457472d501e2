package schemamigrationsrepo_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jrazmi/todolist/core/repositories/schemamigrationsrepo"
	"github.com/jrazmi/todolist/sdk/logger"
)

type fakeStorer struct {
	migrations []schemamigrationsrepo.SchemaMigration
	err        error
}

func (f fakeStorer) List(ctx context.Context) ([]schemamigrationsrepo.SchemaMigration, error) {
	return f.migrations, f.err
}

func TestStatus(t *testing.T) {
	now := time.Now()
	storer := fakeStorer{migrations: []schemamigrationsrepo.SchemaMigration{
		{Version: "000_dropped.sql", Checksum: "aa", AppliedAt: now},
		{Version: "001_create_tasks.sql", Checksum: "bb", AppliedAt: now},
	}}
	repo := schemamigrationsrepo.NewRepository(logger.NewDefault(logger.WithOutput(io.Discard)), storer)

	got, err := repo.Status(context.Background(), []string{"001_create_tasks.sql", "002_next.sql"})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(got), got)
	}
	if got[0].Version != "001_create_tasks.sql" || got[0].Applied == nil || got[0].Applied.Checksum != "bb" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Version != "002_next.sql" || got[1].Applied != nil {
		t.Errorf("got[1] = %+v, want pending", got[1])
	}
	if got[2].Version != "000_dropped.sql" || got[2].Applied == nil {
		t.Errorf("got[2] = %+v, want orphaned applied record", got[2])
	}
}

func TestStatusError(t *testing.T) {
	boom := errors.New("boom")
	repo := schemamigrationsrepo.NewRepository(logger.NewDefault(logger.WithOutput(io.Discard)), fakeStorer{err: boom})

	if _, err := repo.Status(context.Background(), nil); !errors.Is(err, boom) {
		t.Errorf("got %v, want %v", err, boom)
	}
}
