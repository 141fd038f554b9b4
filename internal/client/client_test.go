package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evcraddock/smart-feedback/internal/feedback"
	"github.com/evcraddock/smart-feedback/internal/report"
	"github.com/evcraddock/smart-feedback/internal/sentiment"
)

func TestListFeedback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/feedback" {
			t.Errorf("path = %q, want /api/feedback", r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "testkey" {
			t.Error("expected X-API-Key testkey")
		}
		writeJSON(t, w, []*feedback.Feedback{{ID: 1, FacultyName: "Dr. Smith", Sentiment: sentiment.Positive}})
	}))
	defer srv.Close()

	c := New(srv.URL, "testkey")
	list, err := c.ListFeedback(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d feedback, want 1", len(list))
	}
	if list[0].Sentiment != sentiment.Positive {
		t.Errorf("sentiment = %v, want Positive", list[0].Sentiment)
	}
}

func TestListFeedbackByFacultyEscapesName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/feedback/faculty/Dr. Smith" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.RawPath != "" && r.URL.RawPath != "/api/feedback/faculty/Dr.%20Smith" {
			t.Errorf("raw path = %q", r.URL.RawPath)
		}
		writeJSON(t, w, []*feedback.Feedback{})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "")
	if _, err := c.ListFeedbackByFaculty(context.Background(), "Dr. Smith"); err != nil {
		t.Fatalf("list: %v", err)
	}
}

func TestSubmitFeedback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["facultyName"] != "Dr. Smith" {
			t.Errorf("facultyName = %v", body["facultyName"])
		}
		if body["teachingQuality"] != float64(4) {
			t.Errorf("teachingQuality = %v", body["teachingQuality"])
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, feedback.Feedback{ID: 9, FacultyName: "Dr. Smith", Sentiment: sentiment.Negative})
	}))
	defer srv.Close()

	tq, cs := 4, 2
	c := New(srv.URL, "k")
	f, err := c.SubmitFeedback(context.Background(), feedback.SubmitInput{
		FacultyName:        "Dr. Smith",
		StudentName:        "Alice",
		TeachingQuality:    &tq,
		CommunicationSkill: &cs,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if f.ID != 9 || f.Sentiment != sentiment.Negative {
		t.Errorf("got %+v", f)
	}
}

func TestGenerateReportUnwraps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reports/generate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(t, w, map[string]interface{}{"report": report.Report{ID: 3, FacultyName: "Dr. Smith", TotalFeedbackCount: 10}})
	}))
	defer srv.Close()

	rep, err := New(srv.URL, "k").GenerateReport(context.Background(), "Dr. Smith")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rep.ID != 3 || rep.TotalFeedbackCount != 10 {
		t.Errorf("got %+v", rep)
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]string{"sentiment": "Neutral"})
	}))
	defer srv.Close()

	label, err := New(srv.URL, "k").AnalyzeSentiment(context.Background(), "It was fine")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if label != "Neutral" {
		t.Errorf("label = %q, want Neutral", label)
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"json error", http.StatusUnauthorized, `{"error":"Unauthorized: missing or invalid API key"}`, "Unauthorized: missing or invalid API key"},
		{"validation", http.StatusBadRequest, `{"error":"Validation failed","fields":{"facultyName":"Faculty name is required"}}`, "Validation failed (facultyName: Faculty name is required)"},
		{"plain text", http.StatusBadGateway, `bad gateway`, "server error: Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Errorf("write: %v", err)
				}
			}))
			defer srv.Close()

			_, err := New(srv.URL, "k").ListReports(context.Background())
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(t, w, map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	if err := New(srv.URL, "").Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode: %v", err)
	}
}
