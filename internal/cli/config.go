package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	defaultServerURL = "http://localhost:8080"

	envServerURL = "SF_SERVER_URL"
	envAPIKey    = "SF_API_KEY"
	envFormat    = "SF_FORMAT"

	formatText = "text"
	formatJSON = "json"
)

// CLIConfig holds the client settings saved in ~/.config/sf/config.yaml.
// Each field can be overridden by its SF_* environment variable.
type CLIConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	Format    string `yaml:"format,omitempty"`
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sf", "config.yaml"), nil
}

// loadConfig reads the CLI config. A missing file yields the zero config.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Format != "" {
		if err := validateFormat(cfg.Format); err != nil {
			return CLIConfig{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	return cfg, nil
}

// saveConfig writes the CLI config with owner-only permissions, since it
// holds the API key.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// setting resolves one client setting: environment first, then the config
// file, then fallback. An unreadable config file counts as empty.
func setting(env string, field func(CLIConfig) string, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	if cfg, err := loadConfig(); err == nil {
		if v := field(cfg); v != "" {
			return v
		}
	}
	return fallback
}

func getServerURL() string {
	return setting(envServerURL, func(c CLIConfig) string { return c.ServerURL }, defaultServerURL)
}

func getAPIKey() string {
	return setting(envAPIKey, func(c CLIConfig) string { return c.APIKey }, "")
}

// getFormat returns the output format used when --format is not given.
func getFormat() string {
	return setting(envFormat, func(c CLIConfig) string { return c.Format }, formatText)
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (want %s or %s)", format, formatText, formatJSON)
}
