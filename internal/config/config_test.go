package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		APIBaseURL:        "https://api.example.com",
		HTTPTimeout:       30 * time.Second,
		TokenPollInterval: 30 * time.Second,
		LogLevel:          "info",
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.APIBaseURL = "" },
			wantMsg: "API_BASE_URL is required",
		},
		{
			name:    "bad scheme",
			mutate:  func(c *Config) { c.APIBaseURL = "ftp://example.com" },
			wantMsg: "scheme",
		},
		{
			name:    "timeout too small",
			mutate:  func(c *Config) { c.HTTPTimeout = 100 * time.Millisecond },
			wantMsg: "HTTP timeout",
		},
		{
			name:    "poll interval too large",
			mutate:  func(c *Config) { c.TokenPollInterval = 48 * time.Hour },
			wantMsg: "token poll interval",
		},
		{
			name:    "missing suggestions file",
			mutate:  func(c *Config) { c.SuggestionsFile = "/nonexistent/suggestions.yaml" },
			wantMsg: "suggestions file does not exist",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantMsg: "log level",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{LogLevel: "nope"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"API_BASE_URL", "HTTP timeout", "token poll interval", "log level"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("combined error missing %q: %s", want, msg)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("HTTP_TIMEOUT", "")
	cfg := Load()
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("default HTTP timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.TokenPollInterval != 30*time.Second {
		t.Fatalf("default poll interval = %v", cfg.TokenPollInterval)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("default log level = %q", cfg.LogLevel)
	}

	t.Setenv("HTTP_TIMEOUT", "10s")
	t.Setenv("API_BASE_URL", "https://api.example.com")
	cfg = Load()
	if cfg.HTTPTimeout != 10*time.Second || cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}
