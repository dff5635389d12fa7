package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults and
// validates. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads a YAML file and then applies KITE_*
// environment variables on top. Environment always wins over the file.
//
// The sequence is: parse YAML, apply defaults, apply environment overrides,
// validate the final result.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies KITE_SECTION_FIELD environment variables.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("KITE_API_KEY"); val != "" {
		cfg.Credentials.APIKey = val
	}
	if val := os.Getenv("KITE_API_SECRET"); val != "" {
		cfg.Credentials.APISecret = val
	}
	if val := os.Getenv("KITE_ACCESS_TOKEN"); val != "" {
		cfg.Credentials.AccessToken = val
	}
	if val := os.Getenv("KITE_TOKEN_FILE"); val != "" {
		cfg.Credentials.TokenFile = val
	}

	if val := os.Getenv("KITE_CLIENT_BASE_URL"); val != "" {
		cfg.Client.BaseURL = val
	}
	if val := os.Getenv("KITE_CLIENT_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Client.Timeout = d
		}
	}

	if val := os.Getenv("KITE_RATE_LIMITING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.RateLimiting.Enabled = &b
		}
	}

	if val := os.Getenv("KITE_RETRY_MAX_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retry.MaxRetries = i
		}
	}
	if val := os.Getenv("KITE_RETRY_BASE_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Retry.BaseDelay = d
		}
	}
	if val := os.Getenv("KITE_RETRY_MAX_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Retry.MaxDelay = d
		}
	}
	if val := os.Getenv("KITE_RETRY_RETRY_WRITES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Retry.RetryWrites = b
		}
	}

	if val := os.Getenv("KITE_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			if cfg.Cache == nil {
				cfg.Cache = &CacheConfig{MaxEntries: DefaultCacheSize}
			}
			cfg.Cache.TTL = d
		}
	}
	if val := os.Getenv("KITE_CACHE_MAX_ENTRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil && cfg.Cache != nil {
			cfg.Cache.MaxEntries = i
		}
	}

	if val := os.Getenv("KITE_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("KITE_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}

	if val := os.Getenv("KITE_INSTRUMENTS_DATABASE_PATH"); val != "" {
		cfg.Instruments.DatabasePath = val
	}
	if val := os.Getenv("KITE_INSTRUMENTS_REFRESH_SCHEDULE"); val != "" {
		cfg.Instruments.RefreshSchedule = val
	}

	if val := os.Getenv("KITE_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("KITE_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}
