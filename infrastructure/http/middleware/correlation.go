package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/techpro/techpromanager/infrastructure/service/logger"
)

const CorrelationIDHeader = "X-Correlation-ID"

const maxCorrelationIDLength = 128

// CorrelationIDMiddleware ensures every request and response carries a correlation ID
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid := r.Header.Get(CorrelationIDHeader)
		if cid == "" || len(cid) > maxCorrelationIDLength {
			cid = uuid.NewString()
		}
		w.Header().Set(CorrelationIDHeader, cid)
		next.ServeHTTP(w, r.WithContext(logger.WithCorrelationID(r.Context(), cid)))
	})
}
