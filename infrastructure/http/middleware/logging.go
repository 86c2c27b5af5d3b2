package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/techpro/techpromanager/infrastructure/http/response"
	"github.com/techpro/techpromanager/infrastructure/service/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wrote {
		r.status = code
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wrote {
		r.status = http.StatusOK
		r.wrote = true
	}
	return r.ResponseWriter.Write(b)
}

// LoggingMiddleware writes one access log entry per request. The Authorization
// header is never logged.
func LoggingMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)
			elapsed := time.Since(start)

			fields := map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"duration_ms": elapsed.Milliseconds(),
				"ip":          clientIP(r),
			}

			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error(r.Context(), "request failed", nil, fields)
			case rec.status >= http.StatusBadRequest:
				log.Warn(r.Context(), "request rejected", fields)
			default:
				log.Info(r.Context(), "request completed", fields)
			}
			logger.LogPerformance(r.Context(), log, r.Method+" "+r.URL.Path, elapsed, map[string]interface{}{
				"status": rec.status,
			})
		})
	}
}

// RecoveryMiddleware turns a panic into a 500 response
func RecoveryMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error(r.Context(), "panic recovered", fmt.Errorf("%v", rec), map[string]interface{}{
						"path":  r.URL.Path,
						"stack": string(debug.Stack()),
					})
					response.InternalServerError(w, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
