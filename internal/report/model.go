// Package report aggregates stored feedback into per-faculty report snapshots.
package report

import "time"

// Report is a point-in-time summary of all feedback for one faculty member.
// Reports are never updated; each generation stores a new row.
type Report struct {
	ID                    int64     `json:"id"`
	FacultyName           string    `json:"facultyName"`
	AvgTeachingQuality    float64   `json:"avgTeachingQuality"`
	AvgCommunicationSkill float64   `json:"avgCommunicationSkill"`
	SentimentSummary      string    `json:"sentimentSummary"`
	TotalFeedbackCount    int       `json:"totalFeedbackCount"`
	PositiveCount         int       `json:"positiveCount"`
	NegativeCount         int       `json:"negativeCount"`
	NeutralCount          int       `json:"neutralCount"`
	CreatedAt             time.Time `json:"createdAt"`
}

// Stats is the aggregate of a faculty member's feedback taken from one query.
type Stats struct {
	Total                 int
	AvgTeachingQuality    float64
	AvgCommunicationSkill float64
	Positive              int
	Negative              int
	Neutral               int
}

func scanReport(row interface{ Scan(...interface{}) error }) (*Report, error) {
	var r Report
	err := row.Scan(
		&r.ID, &r.FacultyName,
		&r.AvgTeachingQuality, &r.AvgCommunicationSkill,
		&r.SentimentSummary, &r.TotalFeedbackCount,
		&r.PositiveCount, &r.NegativeCount, &r.NeutralCount,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
