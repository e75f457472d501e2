// Package tasksmemstore is an in-memory task Storer used by tests that need
// the repository behavior without a database.
package tasksmemstore

import (
	"context"
	"sort"
	"sync"

	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"github.com/jrazmi/todolist/core/scaffolding/fop"
)

// Store keeps tasks in a map guarded by a mutex. Results are ordered by id
// and paged like the pgx store.
type Store struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]tasksrepo.Task

	// Err, when set, is returned by every operation.
	Err error
}

func NewStore() *Store {
	return &Store{
		nextID: 1,
		tasks:  make(map[int64]tasksrepo.Task),
	}
}

func (s *Store) Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return tasksrepo.Task{}, s.Err
	}

	task := tasksrepo.Task{
		ID:          s.nextID,
		Title:       input.Title,
		Description: copyString(input.Description),
		Done:        input.Done,
	}
	s.tasks[task.ID] = task
	s.nextID++

	return task, nil
}

func (s *Store) Get(ctx context.Context, id int64) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return tasksrepo.Task{}, s.Err
	}

	task, ok := s.tasks[id]
	if !ok {
		return tasksrepo.Task{}, tasksrepo.ErrNotFound
	}

	return task, nil
}

func (s *Store) List(ctx context.Context, orderBy fop.By, page fop.PageOffset) ([]tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	all := make([]tasksrepo.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		all = append(all, t)
	}

	sort.Slice(all, func(i, j int) bool {
		if orderBy.Direction == fop.DESC {
			return all[i].ID > all[j].ID
		}
		return all[i].ID < all[j].ID
	})

	if page.Skip >= len(all) {
		return []tasksrepo.Task{}, nil
	}
	end := len(all)
	if page.Limit < end-page.Skip {
		end = page.Skip + page.Limit
	}

	return all[page.Skip:end], nil
}

func (s *Store) Update(ctx context.Context, id int64, input tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return tasksrepo.Task{}, s.Err
	}

	task, ok := s.tasks[id]
	if !ok {
		return tasksrepo.Task{}, tasksrepo.ErrNotFound
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if desc, ok := input.Description.Get(); ok {
		task.Description = copyString(desc)
	}
	if input.Done != nil {
		task.Done = *input.Done
	}
	s.tasks[id] = task

	return task, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.tasks[id]; !ok {
		return tasksrepo.ErrNotFound
	}
	delete(s.tasks, id)

	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
