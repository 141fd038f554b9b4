package feedback

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/evcraddock/smart-feedback/internal/sentiment"
)

// Classifier labels the sentiment of a comment.
type Classifier interface {
	Classify(ctx context.Context, comment string) (sentiment.Sentiment, error)
}

// Service provides feedback business logic.
type Service struct {
	repo       *Repository
	classifier Classifier
	logger     *zap.Logger
}

// NewService creates a feedback service.
func NewService(repo *Repository, classifier Classifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, classifier: classifier, logger: logger}
}

// Submit validates in, classifies its comment and stores the result.
// A classification failure aborts the submission before anything is written.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Feedback, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	label, err := s.classifier.Classify(ctx, in.CommentText())
	if err != nil {
		return nil, fmt.Errorf("classifying comment: %w", err)
	}

	saved, err := s.repo.Insert(ctx, &Feedback{
		FacultyName:        in.FacultyName,
		StudentName:        in.StudentName,
		TeachingQuality:    *in.TeachingQuality,
		CommunicationSkill: *in.CommunicationSkill,
		Comment:            in.Comment,
		Sentiment:          label,
	})
	if err != nil {
		return nil, fmt.Errorf("saving feedback: %w", err)
	}

	s.logger.Info("feedback submitted",
		zap.Int64("id", saved.ID),
		zap.String("faculty", saved.FacultyName),
		zap.Stringer("sentiment", saved.Sentiment),
	)
	return saved, nil
}

// List returns all feedback, newest first.
func (s *Service) List(ctx context.Context) ([]*Feedback, error) {
	return s.repo.List(ctx)
}

// ListByStudent returns feedback for a student, matched case-insensitively.
func (s *Service) ListByStudent(ctx context.Context, name string) ([]*Feedback, error) {
	return s.repo.ListByStudent(ctx, name)
}

// ListByFaculty returns feedback for a faculty member, matched exactly.
func (s *Service) ListByFaculty(ctx context.Context, name string) ([]*Feedback, error) {
	return s.repo.ListByFaculty(ctx, name)
}
