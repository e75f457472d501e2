package taskspgxstore_test

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"github.com/jrazmi/todolist/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/todolist/core/scaffolding/fop"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/sdk/logger"
	"github.com/jrazmi/todolist/sdk/validation"
)

// newTestStore connects to TODOLIST_TEST_DATABASE_URL, migrates and empties
// the tasks table. Tests are skipped when the variable is unset.
func newTestStore(t *testing.T) *taskspgxstore.Store {
	t.Helper()

	url := os.Getenv("TODOLIST_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TODOLIST_TEST_DATABASE_URL not set")
	}

	log := logger.NewDefault(logger.WithOutput(io.Discard))

	pool, err := postgresdb.NewTestDB(url)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	t.Cleanup(pool.Close)

	ctx := context.Background()
	if err := postgresdb.Migrate(ctx, log, pool); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE tasks RESTART IDENTITY"); err != nil {
		t.Fatalf("truncating: %v", err)
	}

	return taskspgxstore.NewStore(log, pool)
}

func TestStoreCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, tasksrepo.CreateTask{
		Title:       "buy milk",
		Description: validation.StringPtr("2%"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 || created.Title != "buy milk" || created.Done {
		t.Fatalf("unexpected created task: %+v", created)
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if validation.GetStringOrEmpty(got.Description) != "2%" {
		t.Errorf("description = %v, want 2%%", got.Description)
	}

	updated, err := store.Update(ctx, created.ID, tasksrepo.UpdateTask{Done: validation.BoolPtr(true)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.Done || updated.Title != "buy milk" || updated.Description == nil {
		t.Errorf("partial update touched other fields: %+v", updated)
	}

	cleared, err := store.Update(ctx, created.ID, tasksrepo.UpdateTask{
		Description: validation.Some[*string](nil),
	})
	if err != nil {
		t.Fatalf("Update clear: %v", err)
	}
	if cleared.Description != nil {
		t.Errorf("description = %v, want nil", *cleared.Description)
	}

	same, err := store.Update(ctx, created.ID, tasksrepo.UpdateTask{})
	if err != nil {
		t.Fatalf("empty Update: %v", err)
	}
	if same != cleared {
		t.Errorf("empty update changed the row: %+v != %+v", same, cleared)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := store.Get(ctx, created.ID); !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Get after delete: got %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, created.ID); !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
	if _, err := store.Update(ctx, created.ID, tasksrepo.UpdateTask{Done: validation.BoolPtr(false)}); !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Update missing: got %v, want ErrNotFound", err)
	}
}

func TestStoreListPaging(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	empty, err := store.List(ctx, tasksrepo.DefaultOrderBy, fop.NewPageOffset(0, 100))
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("List empty = %#v, want non-nil empty slice", empty)
	}

	var ids []int64
	for _, title := range []string{"a", "b", "c", "d"} {
		task, err := store.Create(ctx, tasksrepo.CreateTask{Title: title})
		if err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
		ids = append(ids, task.ID)
	}

	page, err := store.List(ctx, tasksrepo.DefaultOrderBy, fop.NewPageOffset(1, 2))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 2 || page[0].ID != ids[1] || page[1].ID != ids[2] {
		t.Errorf("page = %+v, want ids %v", page, ids[1:3])
	}

	none, err := store.List(ctx, tasksrepo.DefaultOrderBy, fop.NewPageOffset(0, 0))
	if err != nil {
		t.Fatalf("List limit 0: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("limit 0 returned %d rows", len(none))
	}

	past, err := store.List(ctx, tasksrepo.DefaultOrderBy, fop.NewPageOffset(10, 5))
	if err != nil {
		t.Fatalf("List past end: %v", err)
	}
	if len(past) != 0 {
		t.Errorf("skip past end returned %d rows", len(past))
	}
}

func TestStoreRejectsNulText(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, tasksrepo.CreateTask{Title: "a\x00b"})
	if !errors.Is(err, tasksrepo.ErrInvalidInput) {
		t.Fatalf("Create err = %v, want ErrInvalidInput", err)
	}
}
