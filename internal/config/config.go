// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/evcraddock/smart-feedback/internal/auth"
	"github.com/evcraddock/smart-feedback/internal/db"
	"github.com/evcraddock/smart-feedback/internal/sentiment"
)

// DefaultEnvFile is the optional dotenv file read before the environment.
const DefaultEnvFile = ".env"

// Config holds the server configuration.
type Config struct {
	Port        int    `env:"SF_PORT" env-default:"8080" env-description:"HTTP listen port"`
	DevMode     bool   `env:"SF_DEV_MODE" env-default:"false" env-description:"console logging at debug level"`
	DBDriver    string `env:"SF_DB_DRIVER" env-default:"sqlite3" env-description:"sqlite3 or postgres"`
	DBDSN       string `env:"SF_DB_DSN" env-description:"database file path (sqlite3) or connection string (postgres)"`
	APIKeys     string `env:"SF_API_KEYS" env-description:"comma-separated accepted API keys, empty disables the gate"`
	CORSOrigins string `env:"SF_CORS_ORIGINS" env-default:"http://localhost:5173,http://localhost:3000" env-description:"comma-separated allowed origins"`

	AI AIConfig
}

// AIConfig configures the chat-completion gateway used for sentiment.
type AIConfig struct {
	URL         string        `env:"SF_AI_URL" env-default:"https://ai.gateway.lovable.dev/v1/chat/completions"`
	Model       string        `env:"SF_AI_MODEL" env-default:"google/gemini-2.5-flash"`
	Temperature float64       `env:"SF_AI_TEMPERATURE" env-default:"0.3"`
	MaxTokens   int           `env:"SF_AI_MAX_TOKENS" env-default:"10"`
	Timeout     time.Duration `env:"SF_AI_TIMEOUT" env-default:"15s"`
	APIKey      string        `env:"SF_AI_API_KEY"`
}

// Load reads envFile (if it exists) into the process environment and then
// parses the environment into a Config. Pass "" to skip the dotenv file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.DBDriver = strings.TrimSpace(c.DBDriver)
	c.DBDSN = strings.TrimSpace(c.DBDSN)

	switch c.DBDriver {
	case db.DriverSQLite:
		if c.DBDSN == "" {
			path, err := db.DefaultPath()
			if err != nil {
				return err
			}
			c.DBDSN = path
		}
	case db.DriverPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("SF_DB_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported SF_DB_DRIVER %q (want %s or %s)", c.DBDriver, db.DriverSQLite, db.DriverPostgres)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SF_PORT %d", c.Port)
	}
	return nil
}

// Keys returns the accepted API keys.
func (c *Config) Keys() auth.KeySet {
	return auth.ParseKeys(c.APIKeys)
}

// Origins returns the allowed CORS origins.
func (c *Config) Origins() []string {
	return SplitList(c.CORSOrigins)
}

// Gateway returns the sentiment gateway configuration.
func (c *Config) Gateway() sentiment.GatewayConfig {
	return sentiment.GatewayConfig{
		URL:         c.AI.URL,
		Model:       c.AI.Model,
		Temperature: c.AI.Temperature,
		MaxTokens:   c.AI.MaxTokens,
		Timeout:     c.AI.Timeout,
		APIKey:      c.AI.APIKey,
	}
}

// Usage describes every environment variable Config reads.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}

// SplitList splits a comma-separated list, trimming entries and dropping empties.
func SplitList(csv string) []string {
	var out []string
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
