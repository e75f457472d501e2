package mid_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/todolist/bridge/scaffolding/errs"
	"github.com/jrazmi/todolist/bridge/scaffolding/mid"
	"github.com/jrazmi/todolist/infrastructure/web"
	"github.com/jrazmi/todolist/sdk/logger"
	"github.com/jrazmi/todolist/sdk/telemetry"
)

type rawError struct{ msg string }

func (e rawError) Error() string { return e.msg }

func (e rawError) Encode() ([]byte, string, error) {
	return []byte(e.msg), "text/plain", nil
}

func newHandler(buf *bytes.Buffer) *web.WebHandler {
	tel := telemetry.NewTelemetry()
	log := logger.NewDefault(logger.WithOutput(buf), logger.WithTraceIDFn(tel.GetTraceID))

	wh := web.NewWebHandler(web.HandlerOptions{},
		web.WithTelemetry(tel),
		web.WithGlobalMiddleware(mid.Logger(log), mid.Errors(log), mid.Metrics(), mid.Panics()),
	)

	wh.GET("/panic", func(ctx context.Context, r *http.Request) web.Encoder {
		panic("kaboom")
	})
	wh.GET("/raw", func(ctx context.Context, r *http.Request) web.Encoder {
		return rawError{msg: "secret dsn in here"}
	})
	wh.GET("/app", func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Newf(errs.NotFound, "nope")
	})
	wh.GET("/hidden", func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.New(errs.InternalOnlyLog, errors.New("pool exhausted"))
	})
	wh.GET("/ok", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse("ok")
	})

	return wh
}

func TestErrorsMiddleware(t *testing.T) {
	tests := []struct {
		path    string
		status  int
		message string
	}{
		{path: "/panic", status: http.StatusInternalServerError, message: "Internal Server Error"},
		{path: "/raw", status: http.StatusInternalServerError, message: "Internal Server Error"},
		{path: "/app", status: http.StatusNotFound, message: "nope"},
		{path: "/hidden", status: http.StatusInternalServerError, message: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var buf bytes.Buffer
			wh := newHandler(&buf)

			rec := httptest.NewRecorder()
			wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}

			var body struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
			}
			if body.Message != tt.message {
				t.Errorf("message = %q, want %q", body.Message, tt.message)
			}
			if !strings.Contains(buf.String(), "handled error during request") {
				t.Errorf("error not logged: %s", buf.String())
			}
		})
	}
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	wh := newHandler(&buf)

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2: %s", len(lines), buf.String())
	}

	var started, completed map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &started); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &completed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if started["msg"] != "request started" || started["path"] != "/ok?x=1" {
		t.Errorf("unexpected start record: %v", started)
	}
	if completed["msg"] != "request completed" || completed["statuscode"] != float64(200) {
		t.Errorf("unexpected completion record: %v", completed)
	}

	tid, _ := started["trace_id"].(string)
	if tid == "" || tid == telemetry.NoTrace || tid != completed["trace_id"] {
		t.Errorf("trace ids: %v / %v", started["trace_id"], completed["trace_id"])
	}
}
