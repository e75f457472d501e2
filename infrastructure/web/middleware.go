package web

import (
	"context"
	"net/http"
	"strings"
)

func (wh *WebHandler) buildHandlerChain(handler HandlerFunc, middleware ...Middleware) HandlerFunc {
	all := make([]Middleware, 0, len(wh.globalMiddleware)+len(middleware))
	all = append(all, wh.globalMiddleware...)
	all = append(all, middleware...)

	final := handler
	for i := len(all) - 1; i >= 0; i-- {
		final = all[i](final)
	}

	return final
}

var corsMethods = strings.Join([]string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
}, ", ")

func (wh *WebHandler) corsMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, r *http.Request) Encoder {
			w := GetWriter(ctx)
			if w == nil {
				return NewError("internal server error: response writer not available")
			}

			origin := r.Header.Get("Origin")
			for _, allowed := range wh.corsOrigins {
				if allowed == "*" || allowed == origin {
					w.Header().Set("Access-Control-Allow-Origin", allowed)
					break
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", corsMethods)
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return NewNoResponse()
			}

			return next(ctx, r)
		}
	}
}
