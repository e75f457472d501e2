// Package taskspgxstore contains task related CRUD functionality backed by
// pgx.
package taskspgxstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"github.com/jrazmi/todolist/core/scaffolding/fop"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/sdk/logger"
)

const columns = "id, title, description, done"

// Store manages the set of APIs for task database access.
type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

// Create inserts a new task into the database.
func (s *Store) Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	const q = `
	INSERT INTO tasks
		(title, description, done)
	VALUES
		(@title, @description, @done)
	RETURNING ` + columns

	args := pgx.NamedArgs{
		"title":       input.Title,
		"description": input.Description,
		"done":        input.Done,
	}

	return s.queryOne(ctx, q, args)
}

// Get retrieves a task by id.
func (s *Store) Get(ctx context.Context, id int64) (tasksrepo.Task, error) {
	const q = `
	SELECT ` + columns + `
	FROM tasks
	WHERE id = @id`

	return s.queryOne(ctx, q, pgx.NamedArgs{"id": id})
}

// List retrieves a page of tasks in the requested order.
func (s *Store) List(ctx context.Context, orderBy fop.By, page fop.PageOffset) ([]tasksrepo.Task, error) {
	args := pgx.NamedArgs{}

	buf := bytes.NewBufferString(`
	SELECT ` + columns + `
	FROM tasks`)

	if err := postgresdb.AddOrderByClause(buf, orderBy.Field, tasksrepo.OrderByPK, orderBy.Direction); err != nil {
		return nil, fmt.Errorf("order by: %w", err)
	}
	postgresdb.AddLimitClause(page.Limit, args, buf)
	postgresdb.AddOffsetClause(page.Skip, args, buf)

	rows, err := s.pool.Query(ctx, buf.String(), args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	if tasks == nil {
		tasks = []tasksrepo.Task{}
	}

	return tasks, nil
}

// Update writes only the present fields of input. With nothing present the
// current row is returned unchanged.
func (s *Store) Update(ctx context.Context, id int64, input tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	if input.IsEmpty() {
		return s.Get(ctx, id)
	}

	args := pgx.NamedArgs{"id": id}
	var sets []string

	if input.Title != nil {
		sets = append(sets, "title = @title")
		args["title"] = *input.Title
	}
	if desc, ok := input.Description.Get(); ok {
		sets = append(sets, "description = @description")
		args["description"] = desc
	}
	if input.Done != nil {
		sets = append(sets, "done = @done")
		args["done"] = *input.Done
	}

	q := `
	UPDATE tasks
	SET ` + strings.Join(sets, ", ") + `
	WHERE id = @id
	RETURNING ` + columns

	return s.queryOne(ctx, q, args)
}

// Delete removes a task by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	const q = `
	DELETE FROM tasks
	WHERE id = @id`

	tag, err := s.pool.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	if tag.RowsAffected() == 0 {
		return tasksrepo.ErrNotFound
	}

	return nil
}

func (s *Store) queryOne(ctx context.Context, q string, args pgx.NamedArgs) (tasksrepo.Task, error) {
	rows, err := s.pool.Query(ctx, q, args)
	if err != nil {
		return tasksrepo.Task{}, handle(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		if errors.Is(err, postgresdb.ErrDBNotFound) {
			return tasksrepo.Task{}, tasksrepo.ErrNotFound
		}
		return tasksrepo.Task{}, handle(err)
	}

	return task, nil
}

// handle maps write failures caused by the submitted values onto
// tasksrepo.ErrInvalidInput.
func handle(err error) error {
	err = postgresdb.HandlePgError(err)
	if errors.Is(err, postgresdb.ErrDBInvalidText) {
		return fmt.Errorf("%w: %w", tasksrepo.ErrInvalidInput, err)
	}
	return err
}
