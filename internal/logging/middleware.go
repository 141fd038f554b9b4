package logging

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/evcraddock/smart-feedback/internal/auth"
)

// TraceHeader carries the per-request trace id on requests and responses.
const TraceHeader = "X-Trace-Id"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestLogger returns middleware that tags each request with a trace id,
// stores a request-scoped logger in the context and logs the outcome.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip noisy paths
			if isHealthPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			traceID, err := uuid.NewV7()
			if err != nil {
				traceID = uuid.New()
			}
			w.Header().Set(TraceHeader, traceID.String())

			reqLogger := logger.With(zap.String("trace_id", traceID.String()))
			r = r.WithContext(WithContext(r.Context(), reqLogger))

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			level := zapcore.InfoLevel
			if rw.status >= 500 {
				level = zapcore.ErrorLevel
			} else if rw.status >= 400 {
				level = zapcore.WarnLevel
			}

			reqLogger.Log(level, "request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rw.status),
				zap.Duration("duration", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
			)
		})
	}
}

// isHealthPath matches the liveness routes the gate also lets through.
func isHealthPath(path string) bool {
	return path == "/health" || auth.IsHealthPath(path)
}
