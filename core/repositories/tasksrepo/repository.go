// Package tasksrepo provides the business operations for tasks.
package tasksrepo

import (
	"context"
	"fmt"

	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/core/scaffolding/fop"
	"github.com/jrazmi/todolist/sdk/logger"
)

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = fmt.Errorf("task: %w", repositories.ErrNotFound)

// ErrInvalidInput is returned when storage refuses a value the payload
// checks let through, such as text holding a NUL character.
var ErrInvalidInput = fmt.Errorf("task: %w", repositories.ErrInvalidInput)

// Storer defines the data storage interface for tasks.
type Storer interface {
	Create(ctx context.Context, input CreateTask) (Task, error)
	Get(ctx context.Context, id int64) (Task, error)
	List(ctx context.Context, orderBy fop.By, page fop.PageOffset) ([]Task, error)
	Update(ctx context.Context, id int64, input UpdateTask) (Task, error)
	Delete(ctx context.Context, id int64) error
}

// Repository manages the set of APIs for task access.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Task repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create adds a new task and returns it with its assigned id.
func (r *Repository) Create(ctx context.Context, input CreateTask) (Task, error) {
	task, err := r.storer.Create(ctx, input)
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	r.log.InfoContext(ctx, "created task", "id", task.ID)
	return task, nil
}

// Get retrieves a single task.
func (r *Repository) Get(ctx context.Context, id int64) (Task, error) {
	task, err := r.storer.Get(ctx, id)
	if err != nil {
		return Task{}, fmt.Errorf("get task[%d]: %w", id, err)
	}

	return task, nil
}

// List returns a page of tasks.
func (r *Repository) List(ctx context.Context, orderBy fop.By, page fop.PageOffset) ([]Task, error) {
	tasks, err := r.storer.List(ctx, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// Update applies the present fields of input to an existing task.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateTask) (Task, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return Task{}, err
	}

	task, err := r.storer.Update(ctx, id, input)
	if err != nil {
		return Task{}, fmt.Errorf("update task[%d]: %w", id, err)
	}

	r.log.InfoContext(ctx, "updated task", "id", id)
	return task, nil
}

// Delete removes a task.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	if err := r.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task[%d]: %w", id, err)
	}

	r.log.InfoContext(ctx, "deleted task", "id", id)
	return nil
}
