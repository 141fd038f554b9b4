package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/evcraddock/smart-feedback/internal/feedback"
	"github.com/evcraddock/smart-feedback/internal/report"
)

const timeLayout = "2006-01-02 15:04"

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printFeedbackSummary prints a single feedback entry in text format.
func printFeedbackSummary(w io.Writer, f *feedback.Feedback) {
	fmt.Fprintf(w, "Feedback #%d\n", f.ID)
	fmt.Fprintf(w, "  Faculty:       %s\n", f.FacultyName)
	fmt.Fprintf(w, "  Student:       %s\n", f.StudentName)
	fmt.Fprintf(w, "  Teaching:      %s\n", formatScore(f.TeachingQuality))
	fmt.Fprintf(w, "  Communication: %s\n", formatScore(f.CommunicationSkill))
	if f.Comment != nil && *f.Comment != "" {
		fmt.Fprintf(w, "  Comment:       %s\n", *f.Comment)
	}
	fmt.Fprintf(w, "  Sentiment:     %s\n", f.Sentiment)
	if !f.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Submitted:     %s\n", f.CreatedAt.Local().Format(timeLayout))
	}
}

// printFeedbackTable prints a list of feedback as a formatted table.
func printFeedbackTable(w io.Writer, list []*feedback.Feedback) error {
	if len(list) == 0 {
		fmt.Fprintln(w, "No feedback found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tFACULTY\tSTUDENT\tTEACH\tCOMM\tSENTIMENT\tCOMMENT"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t-------\t-------\t-----\t----\t---------\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, f := range list {
		comment := "-"
		if f.Comment != nil && *f.Comment != "" {
			comment = truncate(*f.Comment, 40)
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\t%s\n",
			f.ID, truncate(f.FacultyName, 24), truncate(f.StudentName, 24),
			f.TeachingQuality, f.CommunicationSkill, f.Sentiment, comment); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d feedback\n", len(list))
	return nil
}

// printReport prints a single report in text format.
func printReport(w io.Writer, r *report.Report) {
	fmt.Fprintf(w, "Report #%d for %s\n", r.ID, r.FacultyName)
	fmt.Fprintf(w, "  Feedback:      %d (%d positive, %d negative, %d neutral)\n",
		r.TotalFeedbackCount, r.PositiveCount, r.NegativeCount, r.NeutralCount)
	fmt.Fprintf(w, "  Teaching:      %.2f/5\n", r.AvgTeachingQuality)
	fmt.Fprintf(w, "  Communication: %.2f/5\n", r.AvgCommunicationSkill)
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Generated:     %s\n", r.CreatedAt.Local().Format(timeLayout))
	}
	fmt.Fprintf(w, "\n%s\n", r.SentimentSummary)
}

// printReportTable prints a list of reports as a formatted table.
func printReportTable(w io.Writer, list []*report.Report) error {
	if len(list) == 0 {
		fmt.Fprintln(w, "No reports found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tFACULTY\tTOTAL\tTEACH\tCOMM\t+/-/=\tGENERATED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t-------\t-----\t-----\t----\t-----\t---------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, r := range list {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%.2f\t%d/%d/%d\t%s\n",
			r.ID, truncate(r.FacultyName, 24), r.TotalFeedbackCount,
			r.AvgTeachingQuality, r.AvgCommunicationSkill,
			r.PositiveCount, r.NegativeCount, r.NeutralCount,
			r.CreatedAt.Local().Format(timeLayout)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d reports\n", len(list))
	return nil
}

// formatScore renders a 1-5 score as filled and empty stars.
func formatScore(score int) string {
	if score < feedback.MinScore {
		score = feedback.MinScore
	}
	if score > feedback.MaxScore {
		score = feedback.MaxScore
	}
	out := ""
	for i := 1; i <= feedback.MaxScore; i++ {
		if i <= score {
			out += "★"
		} else {
			out += "☆"
		}
	}
	return out
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
