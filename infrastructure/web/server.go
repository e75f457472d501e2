package web

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jrazmi/todolist/sdk/environment"
)

// WebServer wraps http.Server with additional configuration
type WebServer struct {
	*http.Server
	Config ServerConfig
}

// ServerConfig holds web server configuration (exportable)
type ServerConfig struct {
	Port            string        `toml:"port" env:"PORT" default:"0.0.0.0:8000"`
	EnableDebug     bool          `toml:"enable_debug" env:"ENABLE_DEBUG" default:"true"`
	ReadTimeout     time.Duration `toml:"read_timeout" env:"READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `toml:"write_timeout" env:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `toml:"idle_timeout" env:"IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" default:"20s"`
}

// internal serveroptions struct for runtime configuration
type serveroptions struct {
	handler  http.Handler
	errorLog *log.Logger
	config   ServerConfig
}

// ServerOption takes config serveroption and returns formatted config
type ServerOption func(*serveroptions)

// WithHandler sets the HTTP handler
func WithHandler(handler http.Handler) ServerOption {
	return func(o *serveroptions) {
		o.handler = handler
	}
}

// WithErrorLog sets the error logger
func WithErrorLog(errorLog *log.Logger) ServerOption {
	return func(o *serveroptions) {
		o.errorLog = errorLog
	}
}

// WithPort sets the listen address
func WithPort(port string) ServerOption {
	return func(o *serveroptions) {
		o.config.Port = port
	}
}

// WithTimeouts sets all timeout values
func WithTimeouts(read, write, idle, shutdown time.Duration) ServerOption {
	return func(o *serveroptions) {
		o.config.ReadTimeout = read
		o.config.WriteTimeout = write
		o.config.IdleTimeout = idle
		o.config.ShutdownTimeout = shutdown
	}
}

// DefaultServerConfig mirrors the struct tag defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:            "0.0.0.0:8000",
		EnableDebug:     true,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 20 * time.Second,
	}
}

// NewServerDefault creates a new WebServer with default settings
func NewServerDefault(opts ...ServerOption) *WebServer {
	return NewServer(DefaultServerConfig(), opts...)
}

// NewServerFromEnv creates a new WebServer from the TOML file and environment
// variables under prefix.
func NewServerFromEnv(prefix string, opts ...ServerOption) (*WebServer, error) {
	var config ServerConfig
	if err := environment.Parse(prefix, &config); err != nil {
		return nil, fmt.Errorf("parsing webserver config: %w", err)
	}

	return NewServer(config, opts...), nil
}

// NewServer creates a new WebServer with given config and applies serveroptions
func NewServer(cfg ServerConfig, opts ...ServerOption) *WebServer {
	internalOpts := &serveroptions{
		config: cfg,
	}

	for _, opt := range opts {
		opt(internalOpts)
	}

	server := &http.Server{
		Addr:         internalOpts.config.Port,
		Handler:      internalOpts.handler,
		ReadTimeout:  internalOpts.config.ReadTimeout,
		WriteTimeout: internalOpts.config.WriteTimeout,
		IdleTimeout:  internalOpts.config.IdleTimeout,
		ErrorLog:     internalOpts.errorLog,
	}

	return &WebServer{
		Server: server,
		Config: internalOpts.config,
	}
}
