package tasksrepobridge

import (
	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"github.com/jrazmi/todolist/sdk/logger"
)

// bridge provides HTTP handlers for Task operations.
type bridge struct {
	log             *logger.Logger
	tasksRepository *tasksrepo.Repository
}

func newBridge(log *logger.Logger, tasksRepository *tasksrepo.Repository) *bridge {
	return &bridge{
		log:             log,
		tasksRepository: tasksRepository,
	}
}
