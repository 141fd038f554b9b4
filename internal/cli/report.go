package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/smart-feedback/internal/report"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and list faculty reports",
	}
	cmd.AddCommand(newReportGenerateCmd(), newReportListCmd())
	return cmd
}

func newReportGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <faculty name>",
		Short: "Generate a report for a faculty member",
		Long:  "Aggregate all feedback for a faculty member into a new report snapshot.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := newAPIClient().GenerateReport(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, rep)
			}
			printReport(out, rep)
			return nil
		},
	}
}

func newReportListCmd() *cobra.Command {
	var faculty string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()
			var (
				list []*report.Report
				err  error
			)
			if faculty != "" {
				list, err = c.ListReportsByFaculty(cmd.Context(), faculty)
			} else {
				list, err = c.ListReports(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, list)
			}
			return printReportTable(out, list)
		},
	}

	cmd.Flags().StringVar(&faculty, "faculty", "", "only reports for this faculty member")

	return cmd
}
