// Package cli defines the cobra command tree for smart-feedback.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/smart-feedback/internal/client"
)

var (
	flagFormat string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sf",
		Short:         "Collect faculty feedback and generate reports",
		Long:          "A tool to collect student feedback on faculty, classify comment sentiment and generate per-faculty reports. Run the API server or talk to one from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				flagFormat = getFormat()
			}
			return validateFormat(flagFormat)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", formatText, "output format (text|json, default from SF_FORMAT or config)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path for serve (default: SF_DB_DSN or ~/.config/sf/feedback.db)")

	root.AddCommand(
		newServeCmd(),
		newFeedbackCmd(),
		newReportCmd(),
		newSentimentCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the smart-feedback API.
func newAPIClient() *client.Client {
	return client.New(getServerURL(), getAPIKey())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == formatJSON
}
