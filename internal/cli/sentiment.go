package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSentimentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentiment",
		Short: "Classify comment sentiment",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "analyze <comment>",
		Short: "Classify a comment as Positive, Negative or Neutral",
		Long:  "Ask the server to classify a comment. Nothing is stored.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := newAPIClient().AnalyzeSentiment(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, map[string]string{"sentiment": label})
			}
			_, err = fmt.Fprintln(out, label)
			return err
		},
	})
	return cmd
}
