package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for contradictions. It assumes defaults
// have already been applied.
func Validate(cfg *Config) error {
	if cfg.Credentials.APIKey == "" {
		return fmt.Errorf("credentials.api_key is required")
	}

	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.MaxDelay < cfg.Retry.BaseDelay {
		return fmt.Errorf("retry.max_delay (%v) must be at least retry.base_delay (%v)",
			cfg.Retry.MaxDelay, cfg.Retry.BaseDelay)
	}

	if cfg.Cache != nil {
		if cfg.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", cfg.Cache.TTL)
		}
		if cfg.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", cfg.Cache.MaxEntries)
		}
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", cfg.Logging.Level)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json", "console":
	default:
		return fmt.Errorf("logging.format must be text, json or console, got %q", cfg.Logging.Format)
	}

	if cfg.Metrics.ListenAddress != "" && !cfg.Metrics.Enabled {
		return fmt.Errorf("metrics.listen_address is set but metrics.enabled is false")
	}

	return nil
}
