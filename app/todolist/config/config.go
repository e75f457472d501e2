// Package config holds the composed configuration of the todolist service.
package config

import (
	"context"

	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"github.com/jrazmi/todolist/sdk/logger"
	"github.com/jrazmi/todolist/sdk/telemetry"
)

// Service holds settings that belong to the process rather than to one of
// the infrastructure packages.
type Service struct {
	AutoMigrate bool `toml:"auto_migrate" env:"AUTO_MIGRATE" default:"true"`
}

// Repositories represents the repositories the service exposes.
type Repositories struct {
	Tasks *tasksrepo.Repository
}

// Todolist is the overall configuration handed to route registration.
type Todolist struct {
	Build     string
	Logger    *logger.Logger
	Telemetry telemetry.Telemetry

	Repositories Repositories

	// StatusCheck reports whether the database is reachable.
	StatusCheck func(ctx context.Context) error

	// EnableDebug exposes expvar counters on /debug/vars.
	EnableDebug bool
}
