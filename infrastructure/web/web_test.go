package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/todolist/infrastructure/web"
)

type staticTelemetry struct{}

type traceKey struct{}

func (staticTelemetry) SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceKey{}, "trace-1")
}

func (staticTelemetry) GetTraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceKey{}).(string)
	return v
}

type plainError struct{}

func (plainError) Error() string { return "boom" }

func (plainError) Encode() ([]byte, string, error) {
	return []byte("boom"), "text/plain", nil
}

func serve(h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRespondStatusCodes(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{})

	wh.GET("/ok", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(map[string]string{"message": "hi"})
	})
	wh.POST("/created", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponseWithStatus([]int{1}, http.StatusCreated)
	})
	wh.DELETE("/gone", func(ctx context.Context, r *http.Request) web.Encoder {
		return nil
	})
	wh.GET("/err", func(ctx context.Context, r *http.Request) web.Encoder {
		return plainError{}
	})

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/ok", http.StatusOK, `{"message":"hi"}`},
		{http.MethodPost, "/created", http.StatusCreated, `[1]`},
		{http.MethodDelete, "/gone", http.StatusNoContent, ``},
		{http.MethodGet, "/err", http.StatusInternalServerError, `boom`},
		{http.MethodGet, "/missing", http.StatusNotFound, "404 page not found\n"},
		{http.MethodPut, "/ok", http.StatusMethodNotAllowed, "Method Not Allowed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := serve(wh, tt.method, tt.path, "")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) web.Middleware {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				order = append(order, name)
				return next(ctx, r)
			}
		}
	}

	wh := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mark("global")))
	api := wh.Group("/api/", mark("group"))
	api.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		order = append(order, "handler")
		return nil
	}, mark("route"))

	rec := serve(wh, http.MethodGet, "/api/ping", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}

	want := "global,group,route,handler"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

func TestTelemetryAndWriterInContext(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{
		DefaultHeaders: map[string]string{"X-Service": "todolist"},
	}, web.WithTelemetry(staticTelemetry{}))

	wh.GET("/trace", func(ctx context.Context, r *http.Request) web.Encoder {
		if web.GetWriter(ctx) == nil {
			return web.NewError("no writer")
		}
		return web.NewJSONResponse(staticTelemetry{}.GetTraceID(ctx))
	})

	rec := serve(wh, http.MethodGet, "/trace", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != `"trace-1"` {
		t.Errorf("body = %s", rec.Body.String())
	}
	if rec.Header().Get("X-Service") != "todolist" {
		t.Errorf("default header missing")
	}
}

func TestCORSPreflight(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{CORSOrigins: []string{"*"}})
	wh.GET("/tasks", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse([]string{})
	})

	rec := serve(wh, http.MethodOptions, "/tasks", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("missing allow origin header")
	}

	rec = serve(wh, http.MethodGet, "/tasks", "")
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("missing allow origin header on GET")
	}
}

type selfDecoding struct {
	raw string
}

func (s *selfDecoding) Decode(data []byte) error {
	if string(data) == "bad" {
		return errors.New("rejected")
	}
	s.raw = string(data)
	return nil
}

type validated struct {
	Title string `json:"title"`
}

func (v validated) Validate() error {
	if v.Title == "" {
		return errors.New("title required")
	}
	return nil
}

func TestDecode(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := web.Decode(req, &validated{}); !errors.Is(err, web.ErrEmptyBody) {
		t.Errorf("empty body: got %v, want ErrEmptyBody", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("raw"))
	var sd selfDecoding
	if err := web.Decode(req, &sd); err != nil || sd.raw != "raw" {
		t.Errorf("Decoder: err %v, raw %q", err, sd.raw)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("bad"))
	if err := web.Decode(req, &sd); err == nil {
		t.Error("Decoder error not returned")
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":""}`))
	if err := web.Decode(req, &validated{}); err == nil {
		t.Error("validator error not returned")
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x"}`))
	var v validated
	if err := web.Decode(req, &v); err != nil || v.Title != "x" {
		t.Errorf("json: err %v, value %+v", err, v)
	}
}

func TestNewServerDefaults(t *testing.T) {
	srv := web.NewServerDefault(web.WithPort("127.0.0.1:0"))
	if srv.Addr != "127.0.0.1:0" {
		t.Errorf("addr = %s", srv.Addr)
	}
	if srv.Config.ShutdownTimeout == 0 || srv.ReadTimeout == 0 {
		t.Errorf("timeouts not applied: %+v", srv.Config)
	}
	if web.DefaultServerConfig().Port != "0.0.0.0:8000" {
		t.Errorf("default port = %s", web.DefaultServerConfig().Port)
	}
}
