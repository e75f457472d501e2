// Package tasksrepobridge contains HTTP route registration for Task
package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/todolist/bridge/scaffolding/errs"
	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"github.com/jrazmi/todolist/infrastructure/web"
	"github.com/jrazmi/todolist/sdk/logger"
	"github.com/jrazmi/todolist/sdk/validation"
)

// Config holds configuration for the Task bridge
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for Task. The collection is
// reachable both with and without the trailing slash.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)
	tasks := group.Group("/tasks", cfg.Middleware...)

	tasks.GET("", b.httpList)
	tasks.GET("/{$}", b.httpList)
	tasks.POST("", b.httpCreate)
	tasks.POST("/{$}", b.httpCreate)
	tasks.GET("/{task_id}", b.httpGetByID)
	tasks.PUT("/{task_id}", b.httpUpdate)
	tasks.DELETE("/{task_id}", b.httpDelete)
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return decodeError(err)
	}

	task, err := b.tasksRepository.Create(ctx, MarshalCreateToRepository(input))
	if err != nil {
		return repositoryError(err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(task), http.StatusCreated)
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	page, err := parsePage(qp)
	if err != nil {
		return err
	}

	tasks, rerr := b.tasksRepository.List(ctx, tasksrepo.DefaultOrderBy, page)
	if rerr != nil {
		return repositoryError(rerr)
	}

	return web.NewJSONResponse(MarshalListToBridge(tasks))
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseTaskID(r)
	if err != nil {
		return err
	}

	task, rerr := b.tasksRepository.Get(ctx, id)
	if rerr != nil {
		return repositoryError(rerr)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseTaskID(r)
	if err != nil {
		return err
	}

	var input UpdateTaskInput
	if derr := web.Decode(r, &input); derr != nil {
		return decodeError(derr)
	}

	task, rerr := b.tasksRepository.Update(ctx, id, MarshalUpdateToRepository(input))
	if rerr != nil {
		return repositoryError(rerr)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseTaskID(r)
	if err != nil {
		return err
	}

	if rerr := b.tasksRepository.Delete(ctx, id); rerr != nil {
		return repositoryError(rerr)
	}

	return nil
}

func decodeError(err error) *errs.Error {
	if errors.Is(err, web.ErrEmptyBody) {
		return errs.NewFieldErrors(validation.BodyField, err)
	}
	return errs.New(errs.Unprocessable, err)
}

func repositoryError(err error) *errs.Error {
	if errors.Is(err, tasksrepo.ErrNotFound) {
		return errs.Newf(errs.NotFound, "Task not found")
	}
	if errors.Is(err, tasksrepo.ErrInvalidInput) {
		return errs.NewFieldErrors(validation.BodyField, errors.New("text fields must not contain NUL characters"))
	}
	return errs.New(errs.InternalOnlyLog, err)
}
