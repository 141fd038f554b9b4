package web

import "net/http"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok", "service": "smart-feedback"}, http.StatusOK)
}

func (s *Server) handleReportsHealth(w http.ResponseWriter, r *http.Request) {
	healthText(w, "Report Generation Service is running")
}

func (s *Server) handleSentimentHealth(w http.ResponseWriter, r *http.Request) {
	healthText(w, "Sentiment Analysis Service is running")
}

func healthText(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(msg))
}
