package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"time"

	"github.com/jrazmi/todolist/sdk/environment"
)

// Logger is a wrapper around the standard slog.Logger.
type Logger struct {
	*slog.Logger
}

// TraceIDFn pulls a trace id out of a request context.
type TraceIDFn func(ctx context.Context) string

// options holds all configurable settings for the logger.
type options struct {
	level      slog.Level
	output     io.Writer
	addSource  bool
	format     string // "json" or "text"
	timeFormat string // "RFC3339", "Unix", "UnixMilli", or custom format
	service    string
	traceIDFn  TraceIDFn
}

// Options is the exportable configuration struct
type Options struct {
	Level      string `toml:"log_level" env:"LOG_LEVEL" default:"INFO"`
	Output     string `toml:"log_output" env:"LOG_OUTPUT" default:"STDOUT"`
	Format     string `toml:"log_format" env:"LOG_FORMAT" default:"json"`
	TimeFormat string `toml:"log_time_format" env:"LOG_TIME_FORMAT" default:"RFC3339"`
}

// Option takes config option and returns formatted config
type Option func(*options)

func WithLevel(level string) Option {
	return func(o *options) {
		o.level = parseLevel(level)
	}
}

// WithOutput redirects log records, mostly useful in tests.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

func WithSource(enabled bool) Option {
	return func(o *options) {
		o.addSource = enabled
	}
}

// WithService stamps every record with a service attribute.
func WithService(name string) Option {
	return func(o *options) {
		o.service = name
	}
}

// WithTraceIDFn adds a trace_id attribute to every record logged with a context.
func WithTraceIDFn(fn TraceIDFn) Option {
	return func(o *options) {
		o.traceIDFn = fn
	}
}

func NewDefault(opts ...Option) *Logger {
	options := Options{
		Level:      "INFO",
		Output:     "STDOUT",
		Format:     "json",
		TimeFormat: "RFC3339",
	}
	return newLogger(options, opts...)
}

// NewStdLogger adapts the logger for APIs that want a *log.Logger, such as
// http.Server.ErrorLog.
func NewStdLogger(logger *Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(logger.Logger.Handler(), level)
}

func NewFromEnv(prefix string, opts ...Option) (*Logger, error) {
	var options Options
	if err := environment.Parse(prefix, &options); err != nil {
		return nil, fmt.Errorf("parsing logger config: %w", err)
	}
	return newLogger(options, opts...), nil
}

// newLogger creates a new Logger with default settings and applies any given options.
func newLogger(cfg Options, opts ...Option) *Logger {
	options := &options{
		level:      parseLevel(cfg.Level),
		output:     parseOutput(cfg.Output),
		timeFormat: cfg.TimeFormat,
		format:     cfg.Format,
	}
	for _, opt := range opts {
		opt(options)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     options.level,
		AddSource: options.addSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.TimeKey || options.timeFormat == "" {
				return a
			}
			switch options.timeFormat {
			case "Unix":
				return slog.Int64(slog.TimeKey, a.Value.Time().Unix())
			case "UnixMilli":
				return slog.Int64(slog.TimeKey, a.Value.Time().UnixMilli())
			case "RFC3339Nano":
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339Nano))
			case "RFC3339":
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			default:
				// Treat as custom layout
				return slog.String(slog.TimeKey, a.Value.Time().Format(options.timeFormat))
			}
		},
	}

	var handler slog.Handler
	switch options.format {
	case "text":
		handler = slog.NewTextHandler(options.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(options.output, handlerOpts)
	}

	if options.traceIDFn != nil {
		handler = &traceHandler{Handler: handler, traceIDFn: options.traceIDFn}
	}

	l := slog.New(handler)
	if options.service != "" {
		l = l.With("service", options.service)
	}

	return &Logger{
		Logger: l,
	}
}

// DebugContextf logs a debug message with formatting
func (l *Logger) DebugContextf(ctx context.Context, format string, args ...any) {
	l.DebugContext(ctx, fmt.Sprintf(format, args...))
}

// InfoContextf logs an info message with formatting
func (l *Logger) InfoContextf(ctx context.Context, format string, args ...any) {
	l.InfoContext(ctx, fmt.Sprintf(format, args...))
}

// WarnContextf logs a warning message with formatting
func (l *Logger) WarnContextf(ctx context.Context, format string, args ...any) {
	l.WarnContext(ctx, fmt.Sprintf(format, args...))
}

// ErrorContextf logs an error message with formatting
func (l *Logger) ErrorContextf(ctx context.Context, format string, args ...any) {
	l.ErrorContext(ctx, fmt.Sprintf(format, args...))
}

type traceHandler struct {
	slog.Handler
	traceIDFn TraceIDFn
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if tid := h.traceIDFn(ctx); tid != "" {
			r.AddAttrs(slog.String("trace_id", tid))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs), traceIDFn: h.traceIDFn}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name), traceIDFn: h.traceIDFn}
}
