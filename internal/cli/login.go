package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API key for CLI access",
		Long:  "Prompts for one of the server's configured API keys and saves it to ~/.config/sf/config.yaml.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, server)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server URL (default: from config or http://localhost:8080)")

	return cmd
}

func runLogin(cmd *cobra.Command, serverFlag string) error {
	out := cmd.OutOrStdout()

	serverURL := serverFlag
	if serverURL == "" {
		serverURL = getServerURL()
	}
	fmt.Fprintf(out, "Server: %s\n", serverURL)
	fmt.Fprint(out, "Paste your API key: ")

	reader := bufio.NewReader(cmd.InOrStdin())
	key, err := reader.ReadString('\n')
	if err != nil && key == "" {
		return fmt.Errorf("reading input: %w", err)
	}

	key = strings.TrimSpace(key)
	if err := validateAPIKey(key); err != nil {
		return err
	}

	// Load existing config to preserve other fields
	cfg, err := loadConfig()
	if err != nil {
		cfg = CLIConfig{}
	}

	cfg.APIKey = key
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}

	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\n✓ API key saved. You're logged in!")
	return nil
}

// validateAPIKey checks that the key is non-empty and contains no whitespace.
// The server compares keys exactly, so an embedded space can never match.
func validateAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("no API key provided")
	}
	if strings.ContainsAny(key, " \t\r\n") {
		return fmt.Errorf("invalid API key format (must not contain whitespace)")
	}
	return nil
}
