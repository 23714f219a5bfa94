package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds the explicit configuration for the dashboard. The backend
// base URL is injected here once, at construction; no component reads the
// environment at call sites.
type Config struct {
	// Backend
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Token status polling
	TokenPollInterval time.Duration

	// Classification suggestions (optional YAML file)
	SuggestionsFile string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		APIBaseURL:        getEnv("API_BASE_URL", ""),
		HTTPTimeout:       getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		TokenPollInterval: getEnvDuration("TOKEN_POLL_INTERVAL", 30*time.Second),
		SuggestionsFile:   getEnv("SUGGESTIONS_FILE", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if c.APIBaseURL == "" {
		errs = append(errs, "API_BASE_URL is required")
	} else if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.HTTPTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errs = append(errs, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	if c.TokenPollInterval < time.Second {
		errs = append(errs, fmt.Sprintf("invalid token poll interval %v: must be at least 1 second", c.TokenPollInterval))
	} else if c.TokenPollInterval > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid token poll interval %v: must be at most 24 hours", c.TokenPollInterval))
	}

	if c.SuggestionsFile != "" {
		if _, err := os.Stat(c.SuggestionsFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("suggestions file does not exist: %s", c.SuggestionsFile))
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
