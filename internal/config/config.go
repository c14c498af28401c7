package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the console needs to reach the backend.
type Config struct {
	APIBase   string
	OAuthBase string
	LogFile   string
}

// New loads configuration from a .env file (if present) and the
// environment, with defaults suited to a local backend.
func New() (*Config, error) {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		APIBase:   getEnvOrDefault("INBOXAI_API_BASE", "http://localhost:8080/api"),
		OAuthBase: getEnvOrDefault("INBOXAI_OAUTH_BASE", "http://localhost:8080/oauth"),
		LogFile:   getEnvOrDefault("INBOXAI_LOG_FILE", "inboxai.log"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"INBOXAI_API_BASE":   c.APIBase,
		"INBOXAI_OAUTH_BASE": c.OAuthBase,
	} {
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, value)
		}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
