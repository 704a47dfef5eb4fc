package geolib

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultRateLimitInterval = 100 * time.Millisecond
	DefaultRateLimitBurst    = 10

	DefaultCircuitBreakerThreshold = 5
	DefaultCircuitBreakerCooldown  = 30 * time.Second
)

type httpClient struct {
	userAgent      string
	client         *http.Client
	rateLimiter    *rate.Limiter
	circuitBreaker *circuitBreaker
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	if err := h.rateLimiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("cannot pass a rate limiter: %w", err)
	}

	if !h.circuitBreaker.allow() {
		return nil, ErrCircuitOpened
	}

	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		h.circuitBreaker.report(err)

		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		io.Copy(io.Discard, resp.Body) // nolint: errcheck
		resp.Body.Close()

		err = fmt.Errorf("netloc has responded with %s", resp.Status)
		h.circuitBreaker.report(err)

		return nil, err
	}

	h.circuitBreaker.report(nil)

	return resp, nil
}

// NewHTTPClient wraps a stock http.Client with a user agent, a rate
// limiter and a per-upstream circuit breaker. Every provider gets its own
// instance so one flaky upstream cannot starve the others.
func NewHTTPClient(client *http.Client,
	userAgent string,
	rateLimitInterval time.Duration,
	rateLimitBurst int,
	circuitBreakerThreshold uint,
	circuitBreakerCooldown time.Duration) HTTPClient {
	if rateLimitInterval <= 0 {
		rateLimitInterval = DefaultRateLimitInterval
	}

	if rateLimitBurst <= 0 {
		rateLimitBurst = DefaultRateLimitBurst
	}

	if circuitBreakerThreshold == 0 {
		circuitBreakerThreshold = DefaultCircuitBreakerThreshold
	}

	if circuitBreakerCooldown <= 0 {
		circuitBreakerCooldown = DefaultCircuitBreakerCooldown
	}

	return httpClient{
		userAgent:      userAgent,
		client:         client,
		rateLimiter:    rate.NewLimiter(rate.Every(rateLimitInterval), rateLimitBurst),
		circuitBreaker: newCircuitBreaker(circuitBreakerThreshold, circuitBreakerCooldown),
	}
}
