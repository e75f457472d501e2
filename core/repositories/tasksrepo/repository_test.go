package tasksrepo_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"github.com/jrazmi/todolist/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/todolist/core/scaffolding/fop"
	"github.com/jrazmi/todolist/sdk/logger"
	"github.com/jrazmi/todolist/sdk/validation"
)

func newRepo() (*tasksrepo.Repository, *tasksmemstore.Store) {
	store := tasksmemstore.NewStore()
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	return tasksrepo.NewRepository(log, store), store
}

func TestRepositoryCreateGet(t *testing.T) {
	repo, _ := newRepo()
	ctx := context.Background()

	a, err := repo.Create(ctx, tasksrepo.CreateTask{Title: "a"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := repo.Create(ctx, tasksrepo.CreateTask{Title: "b", Done: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("ids not unique: %d", a.ID)
	}

	got, err := repo.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != b {
		t.Errorf("got %+v, want %+v", got, b)
	}
}

func TestRepositoryNotFound(t *testing.T) {
	repo, _ := newRepo()
	ctx := context.Background()

	if _, err := repo.Get(ctx, 42); !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Get: got %v, want ErrNotFound", err)
	}
	if _, err := repo.Update(ctx, 42, tasksrepo.UpdateTask{}); !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Update: got %v, want ErrNotFound", err)
	}
	err := repo.Delete(ctx, 42)
	if !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Delete: got %v, want ErrNotFound", err)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Delete: %v does not wrap repositories.ErrNotFound", err)
	}
}

func TestRepositoryUpdatePartial(t *testing.T) {
	repo, _ := newRepo()
	ctx := context.Background()

	task, err := repo.Create(ctx, tasksrepo.CreateTask{Title: "a", Description: validation.StringPtr("x")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Update(ctx, task.ID, tasksrepo.UpdateTask{Done: validation.BoolPtr(true)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !got.Done || got.Title != "a" || validation.GetStringOrEmpty(got.Description) != "x" {
		t.Errorf("unexpected update result: %+v", got)
	}

	got, err = repo.Update(ctx, task.ID, tasksrepo.UpdateTask{Description: validation.Some[*string](nil)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Description != nil {
		t.Errorf("description not cleared: %v", *got.Description)
	}

	same, err := repo.Update(ctx, task.ID, tasksrepo.UpdateTask{})
	if err != nil {
		t.Fatalf("empty Update: %v", err)
	}
	if same != got {
		t.Errorf("empty update changed task: %+v != %+v", same, got)
	}
}

func TestRepositoryDelete(t *testing.T) {
	repo, _ := newRepo()
	ctx := context.Background()

	task, err := repo.Create(ctx, tasksrepo.CreateTask{Title: "a"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, task.ID); !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Get after delete: got %v", err)
	}
}

func TestRepositoryList(t *testing.T) {
	repo, _ := newRepo()
	ctx := context.Background()

	for _, title := range []string{"c", "a", "b"} {
		if _, err := repo.Create(ctx, tasksrepo.CreateTask{Title: title}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	tasks, err := repo.List(ctx, tasksrepo.DefaultOrderBy, fop.NewPageOffset(0, fop.DefaultLimit))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("len = %d, want 3", len(tasks))
	}
	for i := 1; i < len(tasks); i++ {
		if tasks[i-1].ID >= tasks[i].ID {
			t.Errorf("not ordered by id: %+v", tasks)
		}
	}

	page, err := repo.List(ctx, tasksrepo.DefaultOrderBy, fop.NewPageOffset(1, 1))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 1 || page[0].ID != tasks[1].ID {
		t.Errorf("page = %+v, want [%+v]", page, tasks[1])
	}
}

func TestRepositoryStoreError(t *testing.T) {
	repo, store := newRepo()
	boom := errors.New("connection refused")
	store.Err = boom

	_, err := repo.Create(context.Background(), tasksrepo.CreateTask{Title: "a"})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped %v", err, boom)
	}
	if errors.Is(err, tasksrepo.ErrNotFound) {
		t.Error("storage fault reported as not found")
	}
}
