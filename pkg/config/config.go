package config

import "time"

// Config is the root configuration for the client and its tooling. It is
// loaded from YAML, defaulted, optionally overridden from KITE_*
// environment variables, then validated.
type Config struct {
	Credentials  CredentialsConfig  `yaml:"credentials"`
	Client       ClientConfig       `yaml:"client"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	Retry        RetryConfig        `yaml:"retry"`

	// Cache is nil when the cache section is absent from the file, which
	// disables response caching entirely.
	Cache *CacheConfig `yaml:"cache"`

	Metrics     MetricsConfig     `yaml:"metrics"`
	Instruments InstrumentsConfig `yaml:"instruments"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// CredentialsConfig identifies the API application and session. The access
// token can be supplied inline or via a token file that is re-read when it
// changes on disk.
type CredentialsConfig struct {
	APIKey      string `yaml:"api_key"`
	APISecret   string `yaml:"api_secret"`
	AccessToken string `yaml:"access_token"`
	// TokenFile is a path whose contents are the access token. Takes
	// precedence over AccessToken when set.
	TokenFile string `yaml:"token_file"`
}

// ClientConfig tunes the HTTP layer.
type ClientConfig struct {
	// BaseURL overrides the production API host. Empty means production.
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// RateLimitingConfig controls the pre-request pacing gate.
type RateLimitingConfig struct {
	// Enabled defaults to true. Nil means unset.
	Enabled *bool `yaml:"enabled"`
}

// IsEnabled resolves the default.
func (c RateLimitingConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// RetryConfig controls the retry orchestrator.
type RetryConfig struct {
	MaxRetries int           `yaml:"max_retries"`
	BaseDelay  time.Duration `yaml:"base_delay"`
	MaxDelay   time.Duration `yaml:"max_delay"`
	// ExponentialBackoff defaults to true. Nil means unset.
	ExponentialBackoff *bool `yaml:"exponential_backoff"`
	// RetryWrites opts order mutations into automatic retries.
	RetryWrites bool `yaml:"retry_writes"`
}

// BackoffEnabled resolves the default.
func (c RetryConfig) BackoffEnabled() bool {
	return c.ExponentialBackoff == nil || *c.ExponentialBackoff
}

// CacheConfig controls the response cache. Its presence in the file turns
// caching on.
type CacheConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
}

// MetricsConfig controls Prometheus exposition.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	// ListenAddress serves /metrics when non-empty, e.g. ":9109".
	ListenAddress string `yaml:"listen_address"`
}

// InstrumentsConfig controls the local instrument store.
type InstrumentsConfig struct {
	// DatabasePath is the SQLite file holding the instrument master.
	DatabasePath string `yaml:"database_path"`
	// RefreshSchedule is a cron expression for automatic re-download,
	// e.g. "30 8 * * 1-5". Empty disables scheduled refresh.
	RefreshSchedule string `yaml:"refresh_schedule"`
	// Exchanges restricts the download, empty means all.
	Exchanges []string `yaml:"exchanges"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is "console" for the colorized terminal handler, "text" for
	// logfmt-style output, or "json".
	Format string `yaml:"format"`
}
