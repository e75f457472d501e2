package tasksrepobridge

import (
	_ "embed"
	"encoding/json"

	"github.com/jrazmi/todolist/sdk/validation"
)

var (
	//go:embed schemas/create_task.json
	createTaskSchemaDoc string

	//go:embed schemas/update_task.json
	updateTaskSchemaDoc string

	createTaskSchema = validation.MustCompileSchema("create_task.json", createTaskSchemaDoc)
	updateTaskSchema = validation.MustCompileSchema("update_task.json", updateTaskSchemaDoc)
)

// Task is the wire representation of a task.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Done        bool    `json:"done"`
}

// CreateTaskInput is the payload for POST /tasks.
type CreateTaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Done        bool    `json:"done"`
}

// Decode implements web.Decoder. The raw body is checked against the create
// schema before it is unmarshalled. Bool-like done values such as "yes" or 1
// are read as booleans.
func (c *CreateTaskInput) Decode(data []byte) error {
	if err := createTaskSchema.Validate(data); err != nil {
		return err
	}
	data, err := validation.NormalizeBools(data, "done")
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// UpdateTaskInput is the payload for PUT /tasks/{task_id}. Absent keys leave
// the stored value alone. Description may be sent as null to clear it.
type UpdateTaskInput struct {
	Title       *string                      `json:"title"`
	Description validation.Optional[*string] `json:"description"`
	Done        *bool                        `json:"done"`
}

// Decode implements web.Decoder.
func (u *UpdateTaskInput) Decode(data []byte) error {
	if err := updateTaskSchema.Validate(data); err != nil {
		return err
	}
	data, err := validation.NormalizeBools(data, "done")
	if err != nil {
		return err
	}
	return json.Unmarshal(data, u)
}
