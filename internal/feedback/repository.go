package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/evcraddock/smart-feedback/internal/db"
)

// ErrNotFound is returned when a feedback row does not exist.
var ErrNotFound = errors.New("feedback not found")

// Repository provides data access for feedback.
type Repository struct {
	db *db.DB
}

// NewRepository creates a feedback repository.
func NewRepository(d *db.DB) *Repository {
	return &Repository{db: d}
}

const insertSQL = `INSERT INTO feedback
	(faculty_name, student_name, student_key, teaching_quality, communication_skill, comment, sentiment)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING id`

const selectColumns = `id, faculty_name, student_name, teaching_quality, communication_skill, comment, sentiment, created_at`

const orderNewestFirst = ` ORDER BY created_at DESC, id DESC`

// Insert stores f and returns the persisted row with its id and created_at.
func (r *Repository) Insert(ctx context.Context, f *Feedback) (*Feedback, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.db.Rebind(insertSQL),
		f.FacultyName, f.StudentName, studentKey(f.StudentName),
		f.TeachingQuality, f.CommunicationSkill,
		f.Comment, f.Sentiment,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("inserting feedback: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID returns a single feedback row.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Feedback, error) {
	query := r.db.Rebind("SELECT " + selectColumns + " FROM feedback WHERE id = ?")

	f, err := scanFeedback(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("feedback %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying feedback %d: %w", id, err)
	}

	return f, nil
}

// List returns all feedback, newest first.
func (r *Repository) List(ctx context.Context) ([]*Feedback, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM feedback"+orderNewestFirst)
}

// ListByStudent returns feedback whose student name equals name, ignoring case.
func (r *Repository) ListByStudent(ctx context.Context, name string) ([]*Feedback, error) {
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM feedback WHERE student_key = ?"+orderNewestFirst,
		studentKey(name),
	)
}

// ListByFaculty returns feedback for the exact faculty name.
func (r *Repository) ListByFaculty(ctx context.Context, name string) ([]*Feedback, error) {
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM feedback WHERE faculty_name = ?"+orderNewestFirst,
		name,
	)
}

// studentKey folds a student name for case-insensitive exact lookup.
func studentKey(name string) string {
	return strings.ToLower(name)
}

func (r *Repository) query(ctx context.Context, query string, args ...interface{}) (list []*Feedback, err error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	list = []*Feedback{}
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		list = append(list, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback: %w", err)
	}

	return list, nil
}
