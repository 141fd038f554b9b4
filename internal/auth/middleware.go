package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// HeaderAPIKey is the request header carrying the shared secret.
const HeaderAPIKey = "X-API-Key"

// QueryAPIKey is the query parameter consulted when the header is absent.
const QueryAPIKey = "api_key"

const unauthorizedMessage = "Unauthorized: missing or invalid API key"

// RequireAPIKey is middleware that checks the shared API key on /api/ routes.
// Non-API routes and /api/<service>/health pass through untouched.
// With an empty key set every request passes; a warning is logged once here
// and each bypassed request is logged at debug.
// Returns 401 with a JSON error body for missing or unknown keys.
func RequireAPIKey(keys KeySet, logger *zap.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	open := keys.Empty()
	if open {
		logger.Warn("no API keys configured, API authentication is disabled")
	} else {
		logger.Info("API key authentication enabled", zap.Int("keys", keys.Len()))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only intercept /api/ paths
		if !strings.HasPrefix(r.URL.Path, "/api/") || IsHealthPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if open {
			logger.Debug("API key check bypassed", zap.String("path", r.URL.Path))
			next.ServeHTTP(w, r)
			return
		}

		if !keys.Contains(keyFromRequest(r)) {
			logger.Warn("rejected API request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("ip", r.RemoteAddr),
			)
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IsHealthPath reports whether path is /api/<segment>/health.
func IsHealthPath(path string) bool {
	rest, ok := strings.CutPrefix(path, "/api/")
	if !ok {
		return false
	}
	segment, tail, ok := strings.Cut(rest, "/")
	return ok && segment != "" && tail == "health"
}

// keyFromRequest returns the trimmed X-API-Key header, falling back to the
// api_key query parameter.
func keyFromRequest(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get(HeaderAPIKey)); key != "" {
		return key
	}
	return strings.TrimSpace(r.URL.Query().Get(QueryAPIKey))
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": unauthorizedMessage})
}
