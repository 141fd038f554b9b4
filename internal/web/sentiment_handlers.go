package web

import (
	"net/http"
	"strings"

	"github.com/evcraddock/smart-feedback/internal/feedback"
)

type analyzeRequest struct {
	Comment string `json:"comment"`
}

func (s *Server) apiAnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Comment) == "" {
		apiValidationError(w, &feedback.ValidationError{Fields: map[string]string{
			"comment": "Comment is required",
		}})
		return
	}

	label, err := s.classifier.Classify(r.Context(), req.Comment)
	if err != nil {
		s.writeError(w, r, err, "Error analyzing sentiment")
		return
	}

	apiJSON(w, map[string]string{"sentiment": label.String()}, http.StatusOK)
}
