package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/smart-feedback/internal/feedback"
)

func newFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Submit and list feedback",
	}
	cmd.AddCommand(newFeedbackSubmitCmd(), newFeedbackListCmd())
	return cmd
}

func newFeedbackSubmitCmd() *cobra.Command {
	var (
		in                      feedback.SubmitInput
		teaching, communication int
		comment                 string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit feedback for a faculty member",
		Long:  "Submit a feedback entry. The server classifies the comment sentiment before storing it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("teaching") {
				in.TeachingQuality = &teaching
			}
			if cmd.Flags().Changed("communication") {
				in.CommunicationSkill = &communication
			}
			if cmd.Flags().Changed("comment") {
				in.Comment = &comment
			}

			f, err := newAPIClient().SubmitFeedback(cmd.Context(), in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, f)
			}
			printFeedbackSummary(out, f)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.FacultyName, "faculty", "", "faculty member name")
	cmd.Flags().StringVar(&in.StudentName, "student", "", "student name")
	cmd.Flags().IntVar(&teaching, "teaching", 0, "teaching quality (1-5)")
	cmd.Flags().IntVar(&communication, "communication", 0, "communication skill (1-5)")
	cmd.Flags().StringVar(&comment, "comment", "", "optional free-text comment")

	return cmd
}

func newFeedbackListCmd() *cobra.Command {
	var student, faculty string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List feedback",
		Long:  "List all feedback, or only one student's (case-insensitive) or one faculty member's (exact).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if student != "" && faculty != "" {
				return fmt.Errorf("use either --student or --faculty, not both")
			}

			c := newAPIClient()
			var (
				list []*feedback.Feedback
				err  error
			)
			switch {
			case student != "":
				list, err = c.ListFeedbackByStudent(cmd.Context(), student)
			case faculty != "":
				list, err = c.ListFeedbackByFaculty(cmd.Context(), faculty)
			default:
				list, err = c.ListFeedback(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, list)
			}
			return printFeedbackTable(out, list)
		},
	}

	cmd.Flags().StringVar(&student, "student", "", "only feedback from this student")
	cmd.Flags().StringVar(&faculty, "faculty", "", "only feedback for this faculty member")

	return cmd
}
