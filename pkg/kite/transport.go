package kite

import (
	"crypto/sha256"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single HTTP exchange, including connection setup
// and reading the body.
const DefaultTimeout = 30 * time.Second

// Doer executes a single HTTP request. *http.Client satisfies it; tests
// substitute their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Signer computes the digest used in token-exchange checksums. The default
// is SHA256Signer; hosts that delegate hashing can substitute their own.
type Signer interface {
	Sum(data []byte) []byte
}

// SHA256Signer is the default checksum digest.
type SHA256Signer struct{}

// Sum returns the SHA-256 digest of data.
func (SHA256Signer) Sum(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// newHTTPClient builds the production HTTP client with connection pooling
// tuned for a steady stream of small API calls to a single host.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}
}
