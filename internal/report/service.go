package report

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ErrNotFound is returned by Generate when the faculty member has no feedback.
var ErrNotFound = errors.New("no feedback found for faculty")

// Service generates and lists reports.
type Service struct {
	repo   *Repository
	logger *zap.Logger
}

// NewService creates a report service.
func NewService(repo *Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Generate aggregates the feedback for facultyName, stores a new report
// snapshot and returns it. The name is matched exactly.
func (s *Service) Generate(ctx context.Context, facultyName string) (*Report, error) {
	stats, err := s.repo.FacultyStats(ctx, facultyName)
	if err != nil {
		return nil, err
	}
	if stats.Total == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, facultyName)
	}

	saved, err := s.repo.Insert(ctx, &Report{
		FacultyName:           facultyName,
		AvgTeachingQuality:    stats.AvgTeachingQuality,
		AvgCommunicationSkill: stats.AvgCommunicationSkill,
		SentimentSummary:      Summarize(stats),
		TotalFeedbackCount:    stats.Total,
		PositiveCount:         stats.Positive,
		NegativeCount:         stats.Negative,
		NeutralCount:          stats.Neutral,
	})
	if err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}

	s.logger.Info("report generated",
		zap.Int64("id", saved.ID),
		zap.String("faculty", facultyName),
		zap.Int("total", stats.Total),
	)
	return saved, nil
}

// List returns all reports, newest first.
func (s *Service) List(ctx context.Context) ([]*Report, error) {
	return s.repo.List(ctx)
}

// ListByFaculty returns reports for a faculty member, newest first.
func (s *Service) ListByFaculty(ctx context.Context, facultyName string) ([]*Report, error) {
	return s.repo.ListByFaculty(ctx, facultyName)
}

// Summarize renders the human-readable sentiment summary for stats.
// Stats must have a positive Total.
func Summarize(stats Stats) string {
	return fmt.Sprintf(
		"Based on %d feedback submissions: %.1f%% Positive, %.1f%% Negative, %.1f%% Neutral. "+
			"Overall teaching quality: %.2f/5, Communication skill: %.2f/5.",
		stats.Total,
		percent(stats.Positive, stats.Total),
		percent(stats.Negative, stats.Total),
		percent(stats.Neutral, stats.Total),
		roundTo(stats.AvgTeachingQuality, 2),
		roundTo(stats.AvgCommunicationSkill, 2),
	)
}

// percent returns count/total*100 rounded half-up to one decimal.
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return roundTo(float64(count)/float64(total)*100, 1)
}

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
