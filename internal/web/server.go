// Package web provides the HTTP API server for smart-feedback.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/evcraddock/smart-feedback/internal/auth"
	"github.com/evcraddock/smart-feedback/internal/db"
	"github.com/evcraddock/smart-feedback/internal/feedback"
	"github.com/evcraddock/smart-feedback/internal/logging"
	"github.com/evcraddock/smart-feedback/internal/report"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Keys    auth.KeySet
	Origins []string
	Logger  *zap.Logger
}

// Server is the API HTTP server.
type Server struct {
	feedback   *feedback.Service
	reports    *report.Service
	classifier feedback.Classifier
	logger     *zap.Logger
	router     chi.Router
}

// NewServer creates an API server backed by d. The classifier labels
// comments both on submission and for the standalone analyze endpoint.
func NewServer(d *db.DB, classifier feedback.Classifier, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		feedback:   feedback.NewService(feedback.NewRepository(d), classifier, logger),
		reports:    report.NewService(report.NewRepository(d), logger),
		classifier: classifier,
		logger:     logger,
	}
	s.router = s.routes(opts)
	return s
}

func (s *Server) routes(opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.Origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", auth.HeaderAPIKey},
		ExposedHeaders:   []string{logging.TraceHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(func(next http.Handler) http.Handler {
		return auth.RequireAPIKey(opts.Keys, s.logger, next)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/feedback", func(r chi.Router) {
			r.Post("/", s.apiSubmitFeedback)
			r.Get("/", s.apiListFeedback)
			r.Get("/student/{studentName}", s.apiListFeedbackByStudent)
			r.Get("/faculty/{facultyName}", s.apiListFeedbackByFaculty)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/health", s.handleReportsHealth)
			r.Post("/generate", s.apiGenerateReport)
			r.Get("/", s.apiListReports)
			r.Get("/faculty/{facultyName}", s.apiListReportsByFaculty)
		})

		r.Route("/sentiment", func(r chi.Router) {
			r.Get("/health", s.handleSentimentHealth)
			r.Post("/analyze", s.apiAnalyzeSentiment)
		})
	})

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server and shuts it down gracefully when
// ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", zap.String("addr", "http://localhost"+srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
