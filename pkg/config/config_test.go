package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const minimalConfig = `
credentials:
  api_key: test_key
`

func TestLoadMinimalConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Client.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v", cfg.Client.Timeout)
	}
	if cfg.Retry.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.BaseDelay != DefaultBaseDelay || cfg.Retry.MaxDelay != DefaultMaxDelay {
		t.Errorf("delays = %v / %v", cfg.Retry.BaseDelay, cfg.Retry.MaxDelay)
	}
	if !cfg.RateLimiting.IsEnabled() {
		t.Error("rate limiting should default to enabled")
	}
	if !cfg.Retry.BackoffEnabled() {
		t.Error("exponential backoff should default to enabled")
	}
	if cfg.Cache != nil {
		t.Error("cache should stay disabled when the section is absent")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
credentials:
  api_key: test_key
  api_secret: test_secret
  token_file: /tmp/token

client:
  base_url: http://localhost:8080
  timeout: 10s

rate_limiting:
  enabled: false

retry:
  max_retries: 5
  base_delay: 100ms
  max_delay: 2s
  exponential_backoff: false
  retry_writes: true

cache:
  ttl: 30m
  max_entries: 500

metrics:
  enabled: true
  listen_address: ":9109"

instruments:
  database_path: /var/lib/kite/instruments.db
  refresh_schedule: "30 8 * * 1-5"
  exchanges: [NSE, BSE]

logging:
  level: debug
  format: json
`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.RateLimiting.IsEnabled() {
		t.Error("rate limiting should be off")
	}
	if cfg.Retry.BackoffEnabled() {
		t.Error("backoff should be off")
	}
	if !cfg.Retry.RetryWrites || cfg.Retry.MaxRetries != 5 {
		t.Errorf("retry = %+v", cfg.Retry)
	}
	if cfg.Cache == nil || cfg.Cache.TTL != 30*time.Minute || cfg.Cache.MaxEntries != 500 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if len(cfg.Instruments.Exchanges) != 2 {
		t.Errorf("exchanges = %v", cfg.Instruments.Exchanges)
	}
}

func TestValidateRejectsContradictions(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing api key", `{}`},
		{"max below base delay", `
credentials: {api_key: k}
retry: {base_delay: 5s, max_delay: 1s}
`},
		{"bad log level", `
credentials: {api_key: k}
logging: {level: loud}
`},
		{"metrics address without enable", `
credentials: {api_key: k}
metrics: {listen_address: ":9109"}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.yaml)); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KITE_API_KEY", "env_key")
	t.Setenv("KITE_RETRY_MAX_RETRIES", "7")
	t.Setenv("KITE_RATE_LIMITING_ENABLED", "false")
	t.Setenv("KITE_CACHE_TTL", "5m")
	t.Setenv("KITE_LOGGING_LEVEL", "warn")

	cfg, err := LoadConfigWithEnvOverrides(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides: %v", err)
	}

	if cfg.Credentials.APIKey != "env_key" {
		t.Errorf("APIKey = %s", cfg.Credentials.APIKey)
	}
	if cfg.Retry.MaxRetries != 7 {
		t.Errorf("MaxRetries = %d", cfg.Retry.MaxRetries)
	}
	if cfg.RateLimiting.IsEnabled() {
		t.Error("env did not disable rate limiting")
	}
	// Setting a cache TTL conjures the section with default size.
	if cfg.Cache == nil || cfg.Cache.TTL != 5*time.Minute || cfg.Cache.MaxEntries != DefaultCacheSize {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %s", cfg.Logging.Level)
	}
}

func TestEnvOverridesInvalidValuesFailValidation(t *testing.T) {
	t.Setenv("KITE_RETRY_MAX_RETRIES", "-2")

	if _, err := LoadConfigWithEnvOverrides(writeConfig(t, minimalConfig)); err == nil {
		t.Error("negative retries from the environment should fail validation")
	}
}
