// Package middleware contains the HTTP middlewares mounted by the router.
package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RequestLogger logs HTTP requests with method, path, route, status and duration.
func RequestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	log = log.Named("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			dur := time.Since(start)

			log.Infow("http",
				"method", r.Method,
				"path", r.URL.RequestURI(),
				"route", routePattern(r),
				"status", statusOf(ww),
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}

func statusOf(ww chimiddleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}
