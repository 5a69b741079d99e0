package logging

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDMiddleware tags each request with an ID (honoring an
// incoming X-Request-ID) and logs start and completion.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set("X-Request-ID", requestID)

		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		InfoContext(ctx, "request started", "method", r.Method, "path", r.URL.Path)

		next.ServeHTTP(wrapped, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"durationMs", time.Since(start).Milliseconds(),
		}
		if wrapped.status >= 400 {
			ErrorContext(ctx, "request failed", args...)
		} else {
			InfoContext(ctx, "request completed", args...)
		}
	})
}

// statusWriter captures the response status code for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the wrapper.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
