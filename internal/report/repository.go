package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evcraddock/smart-feedback/internal/db"
)

// Repository stores reports and aggregates feedback.
type Repository struct {
	db *db.DB
}

// NewRepository creates a report repository.
func NewRepository(d *db.DB) *Repository {
	return &Repository{db: d}
}

const insertSQL = `INSERT INTO reports
	(faculty_name, avg_teaching_quality, avg_communication_skill, sentiment_summary,
	 total_feedback_count, positive_count, negative_count, neutral_count)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id`

const selectColumns = `id, faculty_name, avg_teaching_quality, avg_communication_skill, sentiment_summary,
	total_feedback_count, positive_count, negative_count, neutral_count, created_at`

const orderNewestFirst = ` ORDER BY created_at DESC, id DESC`

// statsSQL computes every aggregate in one statement so averages and
// counts describe the same set of rows.
const statsSQL = `SELECT
	COUNT(*),
	COALESCE(AVG(teaching_quality * 1.0), 0),
	COALESCE(AVG(communication_skill * 1.0), 0),
	COALESCE(SUM(CASE WHEN sentiment = 'Positive' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN sentiment = 'Negative' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN sentiment = 'Neutral' THEN 1 ELSE 0 END), 0)
	FROM feedback
	WHERE faculty_name = ?`

// FacultyStats aggregates the feedback stored for the exact faculty name.
// A faculty member with no feedback yields Stats with Total == 0.
func (r *Repository) FacultyStats(ctx context.Context, facultyName string) (Stats, error) {
	var s Stats
	err := r.db.QueryRowContext(ctx, r.db.Rebind(statsSQL), facultyName).Scan(
		&s.Total,
		&s.AvgTeachingQuality, &s.AvgCommunicationSkill,
		&s.Positive, &s.Negative, &s.Neutral,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregating feedback for %q: %w", facultyName, err)
	}
	return s, nil
}

// Insert stores a report and returns it with its id and created_at.
func (r *Repository) Insert(ctx context.Context, rep *Report) (*Report, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.db.Rebind(insertSQL),
		rep.FacultyName, rep.AvgTeachingQuality, rep.AvgCommunicationSkill,
		rep.SentimentSummary, rep.TotalFeedbackCount,
		rep.PositiveCount, rep.NegativeCount, rep.NeutralCount,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("inserting report: %w", err)
	}

	saved, err := scanReport(r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT "+selectColumns+" FROM reports WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %d vanished after insert", id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading back report: %w", err)
	}
	return saved, nil
}

// List returns every stored report, newest first.
func (r *Repository) List(ctx context.Context) ([]*Report, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM reports"+orderNewestFirst)
}

// ListByFaculty returns the reports for the exact faculty name, newest first.
func (r *Repository) ListByFaculty(ctx context.Context, facultyName string) ([]*Report, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM reports WHERE faculty_name = ?"+orderNewestFirst, facultyName)
}

func (r *Repository) query(ctx context.Context, query string, args ...interface{}) (list []*Report, err error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	list = []*Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		list = append(list, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return list, nil
}
