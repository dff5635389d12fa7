package kite

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxResponseBody caps how much of a response is read into memory. The
// instruments dump is the largest payload and stays well under this.
const maxResponseBody = 32 << 20

// params carries everything needed to materialize one HTTP request from an
// endpoint template.
type params struct {
	// segments fill the path template in order, e.g. order ID then variety.
	segments []string
	// query is appended to the URL for any method.
	query url.Values
	// form is sent urlencoded in the body for POST and PUT.
	form url.Values
	// raw skips envelope parsing and returns the body as-is. Used by the
	// instrument dump endpoints, which serve CSV.
	raw bool
}

// dispatch runs one logical operation through the full pipeline: cache
// lookup, rate limit gate, wire attempt, classification and retry. Every
// remote call in this package funnels through here.
func (c *Client) dispatch(ctx context.Context, op Operation, p params) (json.RawMessage, error) {
	ep := op.Endpoint()
	if ep.Path == "" {
		return nil, &APIError{
			Type:    ExceptionGeneral,
			Message: "unknown operation " + op.String(),
		}
	}

	if ep.RequiresAuth && !c.HasAccessToken() {
		return nil, &APIError{
			Type:           ExceptionToken,
			Message:        "no access token set; complete the login flow first",
			RequiresReauth: true,
		}
	}

	start := time.Now()
	defer func() {
		c.metrics.Request().RecordDuration(op.String(), time.Since(start).Seconds())
	}()

	logger := c.logger.With(
		"request_id", uuid.NewString(),
		"operation", op.String(),
		"category", ep.Category.String(),
	)

	cacheable := op.Cacheable() && c.respCache.Enabled()
	var key string
	if cacheable {
		key = cacheKey(op, p)
		if payload, ok := c.respCache.Get(key); ok {
			c.metrics.Cache().RecordHit(op.String())
			logger.Debug("served from cache")
			return payload, nil
		}
		c.metrics.Cache().RecordMiss(op.String())
	}

	policy := c.retry
	attempts := 1
	if policy.allows(ep) {
		attempts += policy.MaxRetries
	}

	var lastErr *APIError
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := policy.backoff(attempt - 1)
			logger.Warn("retrying after failure",
				"attempt", attempt,
				"backoff", backoff,
				"error", lastErr.Message,
			)
			c.metrics.Request().RecordRetry(op.String())
			if err := sleepContext(ctx, backoff); err != nil {
				return nil, err
			}
		}

		waitStart := time.Now()
		if err := c.limiter.Wait(ctx, ep.Category); err != nil {
			return nil, err
		}
		c.metrics.RateLimit().RecordWait(ep.Category.String(), time.Since(waitStart).Seconds())

		c.requestCount.Add(1)
		payload, apiErr := c.attempt(ctx, ep, p)
		if apiErr == nil {
			c.metrics.Request().RecordAttempt(op.String(), ep.Category.String(), "success")
			if cacheable {
				c.respCache.Set(key, payload)
				c.metrics.Cache().SetEntries(c.respCache.Len())
			}
			return payload, nil
		}

		c.metrics.Request().RecordAttempt(op.String(), ep.Category.String(), "error")
		lastErr = apiErr
		if !apiErr.Retryable {
			break
		}
	}

	c.metrics.Request().RecordError(string(lastErr.Type))
	logger.Error("request failed",
		"error_type", string(lastErr.Type),
		"status", lastErr.StatusCode,
		"error", lastErr.Message,
	)
	if lastErr.RequiresReauth && c.onSessionExpired != nil {
		c.onSessionExpired()
	}
	return nil, lastErr
}

// attempt performs exactly one HTTP exchange and classifies the outcome.
func (c *Client) attempt(ctx context.Context, ep Endpoint, p params) (json.RawMessage, *APIError) {
	req, apiErr := c.buildRequest(ctx, ep, p)
	if apiErr != nil {
		return nil, apiErr
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, classifyTransport(err)
	}

	if p.raw {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, Classify(resp.StatusCode, body)
		}
		return body, nil
	}
	return parseResponse(resp.StatusCode, body)
}

func (c *Client) buildRequest(ctx context.Context, ep Endpoint, p params) (*http.Request, *APIError) {
	u := c.baseURL + ep.BuildPath(p.segments...)
	if len(p.query) > 0 {
		u += "?" + p.query.Encode()
	}

	var body io.Reader
	if len(p.form) > 0 {
		body = strings.NewReader(p.form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, u, body)
	if err != nil {
		return nil, &APIError{
			Type:    ExceptionGeneral,
			Message: "building request: " + err.Error(),
			Cause:   err,
		}
	}

	req.Header.Set("X-Kite-Version", kiteVersion)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if ep.RequiresAuth {
		req.Header.Set("Authorization", "token "+c.apiKey+":"+c.currentToken())
	}
	return req, nil
}

// cacheKey derives the cache identity of a request from its operation and
// full parameter set. url.Values.Encode sorts keys, so equivalent requests
// produce identical keys regardless of parameter order.
func cacheKey(op Operation, p params) string {
	var b strings.Builder
	b.WriteString(op.String())
	for _, s := range p.segments {
		b.WriteByte('/')
		b.WriteString(s)
	}
	if len(p.query) > 0 {
		b.WriteByte('?')
		b.WriteString(p.query.Encode())
	}
	return b.String()
}
