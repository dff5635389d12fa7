package kite

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/kite/cache"
	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/kite/ratelimit"
	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/telemetry/metrics"
)

const (
	// DefaultBaseURL is the production REST endpoint.
	DefaultBaseURL = "https://api.kite.trade"
	// loginBaseURL hosts the interactive login flow.
	loginBaseURL = "https://kite.trade/connect/login"

	// kiteVersion pins the API version header on every request.
	kiteVersion = "3"

	userAgent = "kiteconnect-go/1.0"
)

// Options configures a Client. The zero value gives production defaults:
// rate limiting on, three retries with exponential backoff, caching off,
// no metrics.
type Options struct {
	// AccessToken authenticates requests. It can be set later via
	// SetAccessToken after completing the login flow.
	AccessToken string
	// BaseURL overrides the API host, mainly for tests.
	BaseURL string
	// Timeout bounds a single HTTP exchange. Ignored when HTTPClient is
	// set.
	Timeout time.Duration
	// HTTPClient substitutes the transport. Nil means a pooled production
	// client.
	HTTPClient Doer
	// Signer substitutes the checksum digest. Nil means SHA256Signer.
	Signer Signer

	// DisableRateLimiting turns off the pre-request pacing gate. Only for
	// tests; the live service bans clients that exceed its limits.
	DisableRateLimiting bool
	// Retry overrides the retry policy. Nil means DefaultRetryPolicy.
	Retry *RetryPolicy
	// Cache enables response caching for slow-changing reads. Nil leaves
	// caching off entirely.
	Cache *cache.Options

	// Logger receives structured request logs. Nil means slog.Default.
	Logger *slog.Logger
	// Metrics receives Prometheus instrumentation. Nil disables it.
	Metrics *metrics.Collector

	// OnSessionExpired is called after a request fails with an error that
	// requires a fresh login, e.g. to trigger re-authentication. Called from
	// the goroutine that made the request.
	OnSessionExpired func()
}

// Client is a rate-limited, retrying client for the trading REST API.
// It is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string

	mu          sync.RWMutex
	accessToken string

	httpClient Doer
	signer     Signer
	limiter    *ratelimit.Limiter
	respCache  *cache.Cache
	retry      RetryPolicy

	logger           *slog.Logger
	metrics          *metrics.Collector
	onSessionExpired func()

	requestCount atomic.Uint64
}

// NewClient creates a client for the given API key.
func NewClient(apiKey string, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("kite: api key is required")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(opts.Timeout)
	}

	signer := opts.Signer
	if signer == nil {
		signer = SHA256Signer{}
	}

	retry := DefaultRetryPolicy()
	if opts.Retry != nil {
		retry = opts.Retry.applyDefaults()
	}

	var cacheOpts cache.Options
	if opts.Cache != nil {
		cacheOpts = *opts.Cache
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		apiKey:      apiKey,
		baseURL:     baseURL,
		accessToken: opts.AccessToken,
		httpClient:  httpClient,
		signer:      signer,
		limiter:     ratelimit.New(!opts.DisableRateLimiting),
		respCache:   cache.New(cacheOpts),
		retry:       retry,
		logger:      logger.With("component", "kite-client"),
		metrics:     opts.Metrics,

		onSessionExpired: opts.OnSessionExpired,
	}, nil
}

// SetAccessToken installs or replaces the session token, typically after
// GenerateSession or when resuming a stored session.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// HasAccessToken reports whether a session token is installed.
func (c *Client) HasAccessToken() bool {
	return c.currentToken() != ""
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// RateLimitingEnabled reports whether the pre-request pacing gate is active.
func (c *Client) RateLimitingEnabled() bool {
	return c.limiter.Enabled()
}

// CanRequestNow reports whether op could fire immediately without waiting
// for a rate limit slot. Advisory only: another goroutine may take the slot
// between this call and Dispatch.
func (c *Client) CanRequestNow(op Operation) bool {
	return c.limiter.CanRequest(op.Category())
}

// DelayForRequest returns how long op would currently wait for its rate
// limit slot. Zero means immediately available. Advisory only.
func (c *Client) DelayForRequest(op Operation) time.Duration {
	return c.limiter.Delay(op.Category())
}

// RateLimiterStats returns a per-category snapshot of the limiter.
func (c *Client) RateLimiterStats() ratelimit.Stats {
	return c.limiter.Stats()
}

// RequestCount returns the total number of wire attempts made by this
// client, including retries. Cache hits do not count.
func (c *Client) RequestCount() uint64 {
	return c.requestCount.Load()
}

// CacheStats returns a snapshot of the response cache counters.
func (c *Client) CacheStats() cache.Stats {
	return c.respCache.Stats()
}

// ClearCache drops every cached response.
func (c *Client) ClearCache() {
	c.respCache.Clear()
	c.metrics.Cache().SetEntries(0)
}
