package tasksrepo

import "github.com/jrazmi/todolist/sdk/validation"

// Task is a single to-do item.
type Task struct {
	ID          int64   `db:"id"`
	Title       string  `db:"title"`
	Description *string `db:"description"`
	Done        bool    `db:"done"`
}

// CreateTask contains the fields for creating a new task.
type CreateTask struct {
	Title       string
	Description *string
	Done        bool
}

// UpdateTask contains the fields for a partial update. A nil pointer or an
// unset Optional leaves the column unchanged. Description needs Optional
// because null is itself a valid new value.
type UpdateTask struct {
	Title       *string
	Description validation.Optional[*string]
	Done        *bool
}

// IsEmpty reports whether no field is present.
func (u UpdateTask) IsEmpty() bool {
	return u.Title == nil && !u.Description.Set && u.Done == nil
}
