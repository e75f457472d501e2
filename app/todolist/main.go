package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jrazmi/todolist/app/todolist/api"
	"github.com/jrazmi/todolist/app/todolist/config"
	"github.com/jrazmi/todolist/bridge/scaffolding/mid"
	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"github.com/jrazmi/todolist/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/infrastructure/web"
	"github.com/jrazmi/todolist/sdk/environment"
	"github.com/jrazmi/todolist/sdk/logger"
	"github.com/jrazmi/todolist/sdk/telemetry"
)

var build = "develop"
var appName = "TODOLIST"

func main() {
	environment.LoadEnv()

	tel := telemetry.NewTelemetry()

	log, err := logger.NewFromEnv(appName,
		logger.WithService("todolist"),
		logger.WithTraceIDFn(tel.GetTraceID),
	)
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.", err)
		os.Exit(1)
	}
	ctx := context.Background()

	if err := run(ctx, log, tel); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, tel telemetry.Telemetry) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// :*: START DATABASES :*:
	pg, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pg.Close()
	}()
	log.InfoContext(ctx, "init", "service", "postgres")

	var svc config.Service
	if err := environment.Parse(appName, &svc); err != nil {
		return fmt.Errorf("parsing service config: %w", err)
	}

	if svc.AutoMigrate {
		if err := postgresdb.Migrate(ctx, log, pg); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	// REPOSITORIES //
	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	tasks := tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, pg))

	// WEB //
	wh, err := web.NewWebHandlerFromEnv(appName,
		web.WithLogging(log.Logger),
		web.WithTelemetry(tel),
		web.WithGlobalMiddleware(
			mid.Logger(log),
			mid.Errors(log),
			mid.Metrics(),
			mid.Panics(),
		),
	)
	if err != nil {
		return fmt.Errorf("webhandler: %w", err)
	}

	server, err := web.NewServerFromEnv(appName,
		web.WithHandler(wh),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	err = api.AddHandlers(wh, config.Todolist{
		Build:     build,
		Logger:    log,
		Telemetry: tel,
		Repositories: config.Repositories{
			Tasks: tasks,
		},
		StatusCheck: func(ctx context.Context) error {
			return postgresdb.StatusCheck(ctx, pg)
		},
		EnableDebug: server.Config.EnableDebug,
	})
	if err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
