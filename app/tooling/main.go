package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/todolist/app/tooling/commands"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/sdk/environment"
	"github.com/jrazmi/todolist/sdk/logger"
)

var build = "develop"
var appName = "TODOLIST"

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, log *logger.Logger, pg *pgxpool.Pool) error
}

var toolingCommands = []command{
	{
		name:  "migrate",
		usage: "apply the embedded migrations to the database",
		run:   commands.Migrate,
	},
	{
		name:  "status",
		usage: "ping the database and list applied and pending migrations",
		run: func(ctx context.Context, log *logger.Logger, pg *pgxpool.Pool) error {
			return commands.Status(ctx, log, pg, os.Stdout)
		},
	},
}

func lookup(name string) (command, bool) {
	for _, c := range toolingCommands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printHelp() {
	fmt.Println("Usage: go run app/tooling/main.go <command>")
	fmt.Println()
	fmt.Println("Available commands:")
	for _, c := range toolingCommands {
		fmt.Printf("  %-8s - %s\n", c.name, c.usage)
	}
}

func run(ctx context.Context, log *logger.Logger, args []string) error {
	if len(args) == 0 {
		printHelp()
		return nil
	}

	cmd, ok := lookup(args[0])
	if !ok {
		printHelp()
		if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
			return nil
		}
		return fmt.Errorf("unknown command %q", args[0])
	}

	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build, "command", cmd.name)

	pg, err := postgresdb.NewFromEnv(appName, postgresdb.WithTracer(postgresdb.NewLoggingQueryTracer(log.Logger)))
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pg.Close()
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- cmd.run(ctx, log, pg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s failed: %w", cmd.name, err)
		}
		return nil

	case <-ctx.Done():
		log.InfoContext(ctx, "shutdown", "status", "interrupted, waiting for command", "command", cmd.name)

		// The command sees the canceled context; give it a moment to unwind.
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			return fmt.Errorf("%s did not stop in time", cmd.name)
		}
	}
}

func main() {
	environment.LoadEnv()

	log, err := logger.NewFromEnv(appName, logger.WithService("tooling"))
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.", err)
		os.Exit(1)
	}
	ctx := context.Background()

	if err := run(ctx, log, os.Args[1:]); err != nil {
		log.ErrorContext(ctx, "tooling", "err", err)
		os.Exit(1)
	}
}
