package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/evcraddock/smart-feedback/internal/feedback"
	"github.com/evcraddock/smart-feedback/internal/logging"
	"github.com/evcraddock/smart-feedback/internal/report"
	"github.com/evcraddock/smart-feedback/internal/sentiment"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiValidationError writes a 400 listing the failing fields.
func apiValidationError(w http.ResponseWriter, verr *feedback.ValidationError) {
	apiJSON(w, map[string]interface{}{
		"error":  "Validation failed",
		"fields": verr.Fields,
	}, http.StatusBadRequest)
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor maps a domain error to an HTTP status and client-facing message.
// fallback is returned for anything that maps to 500.
func statusFor(err error, fallback string) (int, string) {
	var verr *feedback.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, report.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, sentiment.ErrRateLimited):
		return http.StatusTooManyRequests, sentiment.ErrRateLimited.Error()
	case errors.Is(err, sentiment.ErrPaymentRequired):
		return http.StatusPaymentRequired, sentiment.ErrPaymentRequired.Error()
	}
	return http.StatusInternalServerError, fallback
}

// writeError logs err on the request logger and writes the mapped response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *feedback.ValidationError
	if errors.As(err, &verr) {
		apiValidationError(w, verr)
		return
	}

	code, msg := statusFor(err, fallback)
	logger := logging.FromContext(r.Context(), s.logger)
	if code >= http.StatusInternalServerError {
		logger.Error(fallback, zap.Error(err))
	} else {
		logger.Warn(msg, zap.Error(err))
	}
	apiError(w, msg, code)
}

// pathParam returns the decoded chi URL parameter. chi routes on RawPath
// when the request carries one (e.g. an encoded "/"), so only then is the
// parameter still escaped.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}
