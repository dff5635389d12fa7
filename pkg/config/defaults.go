package config

import "time"

// Default values applied to unset fields.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 200 * time.Millisecond
	DefaultMaxDelay   = 5 * time.Second
	DefaultCacheTTL   = 60 * time.Minute
	DefaultCacheSize  = 1000
	DefaultNamespace  = "kite"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
	DefaultDBPath     = "instruments.db"
)

// ApplyDefaults fills unset fields in place. It never overrides a value the
// file or environment set explicitly.
func ApplyDefaults(cfg *Config) {
	if cfg.Client.Timeout <= 0 {
		cfg.Client.Timeout = DefaultTimeout
	}

	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = DefaultMaxRetries
	}
	if cfg.Retry.MaxRetries < 0 {
		// Explicit opt-out of retries.
		cfg.Retry.MaxRetries = 0
	}
	if cfg.Retry.BaseDelay <= 0 {
		cfg.Retry.BaseDelay = DefaultBaseDelay
	}
	if cfg.Retry.MaxDelay <= 0 {
		cfg.Retry.MaxDelay = DefaultMaxDelay
	}

	if cfg.Cache != nil {
		if cfg.Cache.TTL <= 0 {
			cfg.Cache.TTL = DefaultCacheTTL
		}
		if cfg.Cache.MaxEntries <= 0 {
			cfg.Cache.MaxEntries = DefaultCacheSize
		}
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultNamespace
	}

	if cfg.Instruments.DatabasePath == "" {
		cfg.Instruments.DatabasePath = DefaultDBPath
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}
