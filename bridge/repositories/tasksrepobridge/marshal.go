package tasksrepobridge

import (
	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
)

// MarshalToBridge converts a core task to its wire form.
func MarshalToBridge(task tasksrepo.Task) Task {
	return Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Done:        task.Done,
	}
}

// MarshalListToBridge converts a list of core models to bridge models. The
// result is never nil so an empty page encodes as [].
func MarshalListToBridge(tasks []tasksrepo.Task) []Task {
	bridgeTasks := make([]Task, len(tasks))
	for i, task := range tasks {
		bridgeTasks[i] = MarshalToBridge(task)
	}
	return bridgeTasks
}

// MarshalCreateToRepository converts bridge create input to repository input
func MarshalCreateToRepository(input CreateTaskInput) tasksrepo.CreateTask {
	return tasksrepo.CreateTask{
		Title:       input.Title,
		Description: input.Description,
		Done:        input.Done,
	}
}

// MarshalUpdateToRepository converts bridge update input to repository input
func MarshalUpdateToRepository(input UpdateTaskInput) tasksrepo.UpdateTask {
	return tasksrepo.UpdateTask{
		Title:       input.Title,
		Description: input.Description,
		Done:        input.Done,
	}
}
