package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	AppEnv       string
	// SessionSecrets is the ordered list of cookie signing secrets. New sessions
	// are signed with the first entry; older entries are still accepted so
	// secrets can be rotated without logging everyone out.
	SessionSecrets []string
}

// Load loads configuration from environment variables or sets defaults.
// It fails when no session secret is configured: the server must not start
// serving requests without one.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secrets := splitSecrets(os.Getenv("SESSION_SECRETS"))
	if len(secrets) == 0 {
		return nil, errors.New("SESSION_SECRETS must be set")
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./jokebox.db"),
		AppEnv:         getEnv("APP_ENV", "development"),
		SessionSecrets: secrets,
	}, nil
}

// IsProduction reports whether the app runs in production mode, which controls
// the Secure attribute on the session cookie.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// splitSecrets parses a comma-separated secret list, dropping empty entries.
func splitSecrets(raw string) []string {
	var secrets []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
