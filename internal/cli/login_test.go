package cli

import (
	"strings"
	"testing"
)

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid key", "sf_abc123def456", false},
		{"no prefix needed", "abc123def456", false},
		{"empty key", "", true},
		{"inner space", "abc 123", true},
		{"inner tab", "abc\t123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAPIKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAPIKey(%q) err = %v, wantErr = %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestLoginSavesKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SF_SERVER_URL", "")

	out, err := executeCommandWithInput(strings.NewReader("  sf_pasted_key\n"), "login", "--server", "http://example.test:9000")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "logged in") {
		t.Errorf("expected confirmation, got %q", out)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey != "sf_pasted_key" {
		t.Errorf("api_key = %q, want %q", cfg.APIKey, "sf_pasted_key")
	}
	if cfg.ServerURL != "http://example.test:9000" {
		t.Errorf("server_url = %q, want flag value", cfg.ServerURL)
	}
}

func TestLoginPreservesServerURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := saveConfig(CLIConfig{ServerURL: "http://kept:1"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// No trailing newline: the key is still read at EOF.
	if _, err := executeCommandWithInput(strings.NewReader("sf_key"), "login"); err != nil {
		t.Fatalf("login: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "http://kept:1" || cfg.APIKey != "sf_key" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoginEmptyInput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := executeCommandWithInput(strings.NewReader("\n"), "login"); err == nil {
		t.Fatal("expected error for empty key")
	}
}
