package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Env      string
	HTTPAddr string
	BaseURL  string

	DBDSN     string
	AdminKey  string
	JWTSecret string

	LogLevel string

	RateLimitRPM       int
	SessionHours       int
	InviteReminderDays int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Env = strings.TrimSpace(os.Getenv("CN_ENV"))
	if cfg.Env == "" {
		return nil, fmt.Errorf("CN_ENV is required")
	}
	if cfg.Env != "dev" && cfg.Env != "prod" {
		return nil, fmt.Errorf("CN_ENV must be one of: dev, prod (got: %s)", cfg.Env)
	}

	cfg.HTTPAddr = getEnvOrDefault("CN_HTTP_ADDR", ":8080")

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("CN_BASE_URL")), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("CN_BASE_URL is required")
	}

	cfg.DBDSN = strings.TrimSpace(os.Getenv("CN_DB_DSN"))
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("CN_DB_DSN is required")
	}

	cfg.AdminKey = os.Getenv("CN_ADMIN_KEY")
	if cfg.AdminKey == "" {
		return nil, fmt.Errorf("CN_ADMIN_KEY is required")
	}

	cfg.JWTSecret = os.Getenv("CN_JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("CN_JWT_SECRET is required")
	}
	if cfg.Env == "prod" && len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("CN_JWT_SECRET must be at least 32 characters (currently %d)", len(cfg.JWTSecret))
	}

	cfg.LogLevel = getEnvOrDefault("CN_LOG_LEVEL", "info")
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("CN_LOG_LEVEL must be one of: debug, info, warn, error (got: %s)", cfg.LogLevel)
	}

	var err error
	cfg.RateLimitRPM, err = getEnvIntOrDefault("CN_RATE_LIMIT_RPM", 10)
	if err != nil {
		return nil, err
	}
	if cfg.RateLimitRPM <= 0 {
		return nil, fmt.Errorf("CN_RATE_LIMIT_RPM must be positive (got: %d)", cfg.RateLimitRPM)
	}

	cfg.SessionHours, err = getEnvIntOrDefault("CN_SESSION_HOURS", 12)
	if err != nil {
		return nil, err
	}
	if cfg.SessionHours <= 0 {
		return nil, fmt.Errorf("CN_SESSION_HOURS must be positive (got: %d)", cfg.SessionHours)
	}

	cfg.InviteReminderDays, err = getEnvIntOrDefault("CN_INVITE_REMINDER_DAYS", 3)
	if err != nil {
		return nil, err
	}
	if cfg.InviteReminderDays <= 0 {
		return nil, fmt.Errorf("CN_INVITE_REMINDER_DAYS must be positive (got: %d)", cfg.InviteReminderDays)
	}

	return cfg, nil
}

// IsDev returns true if running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "dev"
}

// RedactedValues returns a map of config values with secrets redacted.
func (c *Config) RedactedValues() map[string]string {
	return map[string]string{
		"CN_ENV":                  c.Env,
		"CN_HTTP_ADDR":            c.HTTPAddr,
		"CN_BASE_URL":             c.BaseURL,
		"CN_DB_DSN":               redactDSN(c.DBDSN),
		"CN_ADMIN_KEY":            "[REDACTED]",
		"CN_JWT_SECRET":           "[REDACTED]",
		"CN_LOG_LEVEL":            c.LogLevel,
		"CN_RATE_LIMIT_RPM":       fmt.Sprintf("%d", c.RateLimitRPM),
		"CN_SESSION_HOURS":        fmt.Sprintf("%d", c.SessionHours),
		"CN_INVITE_REMINDER_DAYS": fmt.Sprintf("%d", c.InviteReminderDays),
	}
}

func redactDSN(dsn string) string {
	if start := strings.Index(dsn, "://"); start != -1 {
		if end := strings.Index(dsn[start+3:], "@"); end != -1 {
			return dsn[:start+3] + "[REDACTED]" + dsn[start+3+end:]
		}
	}
	return dsn
}

func getEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (got: %q)", key, value)
	}
	return parsed, nil
}
