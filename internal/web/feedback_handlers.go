package web

import (
	"net/http"

	"github.com/evcraddock/smart-feedback/internal/feedback"
)

func (s *Server) apiSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var in feedback.SubmitInput
	if !decodeJSON(w, r, &in) {
		return
	}

	saved, err := s.feedback.Submit(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, "Error submitting feedback")
		return
	}

	apiJSON(w, saved, http.StatusCreated)
}

func (s *Server) apiListFeedback(w http.ResponseWriter, r *http.Request) {
	list, err := s.feedback.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "Error retrieving feedback")
		return
	}
	apiJSON(w, list, http.StatusOK)
}

func (s *Server) apiListFeedbackByStudent(w http.ResponseWriter, r *http.Request) {
	list, err := s.feedback.ListByStudent(r.Context(), pathParam(r, "studentName"))
	if err != nil {
		s.writeError(w, r, err, "Error retrieving feedback")
		return
	}
	apiJSON(w, list, http.StatusOK)
}

func (s *Server) apiListFeedbackByFaculty(w http.ResponseWriter, r *http.Request) {
	list, err := s.feedback.ListByFaculty(r.Context(), pathParam(r, "facultyName"))
	if err != nil {
		s.writeError(w, r, err, "Error retrieving feedback")
		return
	}
	apiJSON(w, list, http.StatusOK)
}
