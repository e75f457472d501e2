package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jrazmi/todolist/sdk/environment"
)

type WebHandler struct {
	mux       *http.ServeMux
	log       *slog.Logger
	telemetry Telemetry

	corsOrigins    []string
	defaultHeaders map[string]string

	globalMiddleware []Middleware
}

// HandlerOptions is the exportable configuration struct
type HandlerOptions struct {
	CORSOrigins    []string          `toml:"cors_origins" env:"CORS_ORIGINS" default:"*" separator:","`
	DefaultHeaders map[string]string `toml:"default_headers"`
}

type HandlerOption func(*handlerOptions)

// internal options struct for additional runtime configuration
type handlerOptions struct {
	log              *slog.Logger
	telemetry        Telemetry
	corsOrigins      []string
	defaultHeaders   map[string]string
	globalMiddleware []Middleware
}

// WithLogging sets the logger
func WithLogging(log *slog.Logger) HandlerOption {
	return func(o *handlerOptions) {
		o.log = log
	}
}

// WithTelemetry sets the telemetry provider
func WithTelemetry(tel Telemetry) HandlerOption {
	return func(o *handlerOptions) {
		o.telemetry = tel
	}
}

// WithCORS sets CORS origins. An empty list disables CORS handling.
func WithCORS(origins []string) HandlerOption {
	return func(o *handlerOptions) {
		o.corsOrigins = origins
	}
}

// WithDefaultHeaders sets headers written on every response
func WithDefaultHeaders(headers map[string]string) HandlerOption {
	return func(o *handlerOptions) {
		if o.defaultHeaders == nil {
			o.defaultHeaders = make(map[string]string)
		}
		for k, v := range headers {
			o.defaultHeaders[k] = v
		}
	}
}

// WithGlobalMiddleware adds middleware applied to every route, outermost first
func WithGlobalMiddleware(middleware ...Middleware) HandlerOption {
	return func(o *handlerOptions) {
		o.globalMiddleware = append(o.globalMiddleware, middleware...)
	}
}

// NewWebHandlerFromEnv creates a new WebHandler from the TOML file and
// environment variables under prefix.
func NewWebHandlerFromEnv(prefix string, opts ...HandlerOption) (*WebHandler, error) {
	var options HandlerOptions
	if err := environment.Parse(prefix, &options); err != nil {
		return nil, fmt.Errorf("parsing webhandler config: %w", err)
	}
	return NewWebHandler(options, opts...), nil
}

// NewWebHandler creates a new WebHandler with given config and applies options
func NewWebHandler(cfg HandlerOptions, opts ...HandlerOption) *WebHandler {
	internalOpts := &handlerOptions{
		corsOrigins:    cfg.CORSOrigins,
		defaultHeaders: make(map[string]string, len(cfg.DefaultHeaders)),
	}
	for k, v := range cfg.DefaultHeaders {
		internalOpts.defaultHeaders[k] = v
	}

	for _, opt := range opts {
		opt(internalOpts)
	}

	handler := &WebHandler{
		mux:              http.NewServeMux(),
		log:              internalOpts.log,
		telemetry:        internalOpts.telemetry,
		corsOrigins:      internalOpts.corsOrigins,
		defaultHeaders:   internalOpts.defaultHeaders,
		globalMiddleware: internalOpts.globalMiddleware,
	}

	// CORS runs before everything else so preflight requests short circuit.
	if len(handler.corsOrigins) > 0 {
		handler.globalMiddleware = append([]Middleware{handler.corsMiddleware()}, handler.globalMiddleware...)
		handler.Handle(http.MethodOptions, "/", func(ctx context.Context, r *http.Request) Encoder {
			return NewNoResponse()
		})
	}

	return handler
}

// Handle registers handler for method and path behind the global middleware
// followed by any route specific middleware.
func (wh *WebHandler) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	finalHandler := wh.buildHandlerChain(handler, middleware...)

	httpHandler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if wh.telemetry != nil {
			ctx = wh.telemetry.SetTraceID(ctx)
		}
		ctx = setWriter(ctx, w)

		for k, v := range wh.defaultHeaders {
			w.Header().Set(k, v)
		}

		resp := finalHandler(ctx, r)

		if err := Respond(ctx, w, resp); err != nil && wh.log != nil {
			wh.log.ErrorContext(ctx, "respond error", "error", err)
		}
	}

	pattern := fmt.Sprintf("%s %s", strings.ToUpper(method), path)
	wh.mux.HandleFunc(pattern, httpHandler)
}

// HandleRaw registers a plain http.Handler. Global middleware is not applied.
func (wh *WebHandler) HandleRaw(pattern string, handler http.Handler) {
	wh.mux.Handle(pattern, handler)
}

func (wh *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wh.mux.ServeHTTP(w, r)
}

func (wh *WebHandler) GET(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodGet, path, handler, middleware...)
}

func (wh *WebHandler) POST(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodPost, path, handler, middleware...)
}

func (wh *WebHandler) PUT(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodPut, path, handler, middleware...)
}

func (wh *WebHandler) DELETE(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodDelete, path, handler, middleware...)
}
