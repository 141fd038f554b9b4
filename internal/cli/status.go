package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/smart-feedback/internal/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connection and auth status",
		Long:  "Tests the connection to the server and checks if the stored API key is accepted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func runStatus(ctx context.Context, out io.Writer) error {
	serverURL := getServerURL()
	apiKey := getAPIKey()

	fmt.Fprintf(out, "Server:  %s\n", serverURL)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c := client.New(serverURL, apiKey)
	if err := c.Health(ctx); err != nil {
		fmt.Fprintf(out, "Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}

	if apiKey == "" {
		fmt.Fprintln(out, "API Key: not configured")
	} else {
		prefix := apiKey
		if len(prefix) > 8 {
			prefix = prefix[:8]
		}
		fmt.Fprintf(out, "API Key: %s…\n", prefix)
	}

	// Reports listing is gated and read-only.
	_, err := c.ListReports(ctx)
	var apiErr *client.APIError
	switch {
	case err == nil && apiKey == "":
		fmt.Fprintln(out, "Status:  ✓ connected (server does not require a key)")
	case err == nil:
		fmt.Fprintln(out, "Status:  ✓ connected and authenticated")
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized:
		if apiKey == "" {
			fmt.Fprintln(out, "Status:  ✗ server requires an API key")
			fmt.Fprintln(out, "\nRun 'sf login' to authenticate.")
		} else {
			fmt.Fprintln(out, "Status:  ✗ invalid API key")
			fmt.Fprintln(out, "\nRun 'sf login' to re-authenticate.")
		}
	default:
		fmt.Fprintf(out, "Status:  ✗ unexpected response (%v)\n", err)
	}

	return nil
}
