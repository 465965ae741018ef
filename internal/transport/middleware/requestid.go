package middleware

import (
	"net/http"

	"github.com/andikarahman/hr-management/pkg/logger"
	"github.com/google/uuid"
)

// RequestID tags every request with a trace id, either the caller's
// X-Trace-ID or a fresh UUID, and threads it through the context logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)

		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
