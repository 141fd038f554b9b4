package web

import (
	"net/http"
	"strings"

	"github.com/evcraddock/smart-feedback/internal/feedback"
)

type generateReportRequest struct {
	FacultyName string `json:"facultyName"`
}

func (s *Server) apiGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req generateReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.FacultyName) == "" {
		apiValidationError(w, &feedback.ValidationError{Fields: map[string]string{
			"facultyName": "Faculty name is required",
		}})
		return
	}

	rep, err := s.reports.Generate(r.Context(), req.FacultyName)
	if err != nil {
		s.writeError(w, r, err, "Error generating report")
		return
	}

	apiJSON(w, map[string]interface{}{"report": rep}, http.StatusOK)
}

func (s *Server) apiListReports(w http.ResponseWriter, r *http.Request) {
	list, err := s.reports.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "Error retrieving reports")
		return
	}
	apiJSON(w, list, http.StatusOK)
}

func (s *Server) apiListReportsByFaculty(w http.ResponseWriter, r *http.Request) {
	list, err := s.reports.ListByFaculty(r.Context(), pathParam(r, "facultyName"))
	if err != nil {
		s.writeError(w, r, err, "Error retrieving reports")
		return
	}
	apiJSON(w, list, http.StatusOK)
}
