// Package feedback provides the feedback domain model, validation and data access.
package feedback

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/evcraddock/smart-feedback/internal/sentiment"
)

// Score bounds for teaching quality and communication skill.
const (
	MinScore = 1
	MaxScore = 5
)

// Feedback is a single student's evaluation of a faculty member.
type Feedback struct {
	ID                 int64               `json:"id"`
	FacultyName        string              `json:"facultyName"`
	StudentName        string              `json:"studentName"`
	TeachingQuality    int                 `json:"teachingQuality"`
	CommunicationSkill int                 `json:"communicationSkill"`
	Comment            *string             `json:"comment"`
	Sentiment          sentiment.Sentiment `json:"sentiment"`
	CreatedAt          time.Time           `json:"createdAt"`
}

// SubmitInput is the client-supplied part of a feedback submission.
// Scores are pointers so a missing value can be told apart from zero.
type SubmitInput struct {
	FacultyName        string  `json:"facultyName"`
	StudentName        string  `json:"studentName"`
	TeachingQuality    *int    `json:"teachingQuality"`
	CommunicationSkill *int    `json:"communicationSkill"`
	Comment            *string `json:"comment"`
}

// ValidationError maps JSON field names to human-readable messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validate checks the input and returns a *ValidationError listing every
// failing field, or nil.
func (in SubmitInput) Validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(in.FacultyName) == "" {
		fields["facultyName"] = "Faculty name is required"
	}
	if strings.TrimSpace(in.StudentName) == "" {
		fields["studentName"] = "Student name is required"
	}
	if msg := checkScore("Teaching quality", in.TeachingQuality); msg != "" {
		fields["teachingQuality"] = msg
	}
	if msg := checkScore("Communication skill", in.CommunicationSkill); msg != "" {
		fields["communicationSkill"] = msg
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func checkScore(label string, v *int) string {
	switch {
	case v == nil:
		return label + " is required"
	case *v < MinScore:
		return fmt.Sprintf("%s must be at least %d", label, MinScore)
	case *v > MaxScore:
		return fmt.Sprintf("%s must be at most %d", label, MaxScore)
	}
	return ""
}

// CommentText returns the comment or "" when absent.
func (in SubmitInput) CommentText() string {
	if in.Comment == nil {
		return ""
	}
	return *in.Comment
}

// scanFeedback scans a feedback row in selectColumns order.
func scanFeedback(row interface{ Scan(...interface{}) error }) (*Feedback, error) {
	var f Feedback
	var comment *string

	err := row.Scan(
		&f.ID, &f.FacultyName, &f.StudentName,
		&f.TeachingQuality, &f.CommunicationSkill,
		&comment, &f.Sentiment, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.Comment = comment

	return &f, nil
}
