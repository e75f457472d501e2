// Package api wires every route of the todolist service.
package api

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/jrazmi/todolist/app/todolist/config"
	"github.com/jrazmi/todolist/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/todolist/infrastructure/web"
)

// WelcomeMessage is returned from the root route.
const WelcomeMessage = "Bem-vindo à API de Lista de Tarefas! Acesse " + DocsPath + " para ver a documentação."

type welcome struct {
	Message string `json:"message"`
}

type health struct {
	Status string `json:"status"`
	Build  string `json:"build,omitempty"`
	Error  string `json:"error,omitempty"`
}

// AddHandlers registers the welcome route, the task routes, the API docs
// and the operational endpoints on wh.
func AddHandlers(wh *web.WebHandler, cfg config.Todolist) error {
	wh.GET("/{$}", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(welcome{Message: WelcomeMessage})
	})

	tasksrepobridge.AddHttpRoutes(wh.Group(""), tasksrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.Tasks,
	})

	if err := addDocs(wh); err != nil {
		return err
	}

	wh.HandleRaw("GET /healthz", healthz(cfg))

	if cfg.EnableDebug {
		wh.HandleRaw("GET /debug/vars", expvar.Handler())
	}

	return nil
}

// healthz is registered raw so probes stay out of the request logs.
func healthz(cfg config.Todolist) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()

		resp := web.NewJSONResponse(health{Status: "ok", Build: cfg.Build})

		if cfg.StatusCheck != nil {
			if err := cfg.StatusCheck(ctx); err != nil {
				resp = web.NewJSONResponseWithStatus(health{Status: "db not ready", Build: cfg.Build, Error: err.Error()}, http.StatusServiceUnavailable)
			}
		}

		if err := web.Respond(ctx, w, resp); err != nil {
			cfg.Logger.ErrorContext(ctx, "healthz", "err", err)
		}
	})
}
