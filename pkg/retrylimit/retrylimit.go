// Package retrylimit combines an adaptive rate limiter with exponential
// backoff retries. It is used by the YouTube resolvers, which talk to an
// endpoint that throttles aggressively.
package retrylimit

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// AdaptiveLimiter adjusts its request rate based on outcomes: it creeps up
// after sustained success and backs off sharply on throttling. Safe for
// concurrent use.
type AdaptiveLimiter struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	min, max  rate.Limit
	stepUp    rate.Limit
	stepDown  float64
	lastError time.Time
}

// NewAdaptiveLimiter returns a limiter starting at initial requests per
// second, bounded by [min, max]. stepUp is added on success; the rate is
// multiplied by stepDown on throttling.
func NewAdaptiveLimiter(initial, min, maxLimit, stepUp rate.Limit, stepDown float64) *AdaptiveLimiter {
	if initial < 1 {
		initial = 1
	}
	if min < 1 {
		min = 1
	}
	return &AdaptiveLimiter{
		limiter:  rate.NewLimiter(initial, max(1, int(initial))),
		min:      min,
		max:      maxLimit,
		stepUp:   stepUp,
		stepDown: stepDown,
	}
}

// Wait blocks until a token is available or ctx is done.
func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return a.limiter.Wait(ctx)
}

// Success nudges the rate up, but only once the limiter has been error-free
// for a while.
func (a *AdaptiveLimiter) Success() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if time.Since(a.lastError) > 10*time.Second {
		a.setLimit(a.limiter.Limit() + a.stepUp)
	}
}

// Throttled backs the rate off after a rate-limit response.
func (a *AdaptiveLimiter) Throttled() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastError = time.Now()
	a.setLimit(rate.Limit(float64(a.limiter.Limit()) * a.stepDown))
}

// CurrentLimit returns the current requests per second.
func (a *AdaptiveLimiter) CurrentLimit() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return float64(a.limiter.Limit())
}

func (a *AdaptiveLimiter) setLimit(l rate.Limit) {
	if l > a.max {
		l = a.max
	}
	if l < a.min {
		l = a.min
	}
	if l != a.limiter.Limit() {
		a.limiter.SetLimit(l)
		a.limiter.SetBurst(max(1, int(l)))
	}
}

// HTTPError is optionally implemented by errors carrying an HTTP status.
type HTTPError interface {
	error
	StatusCode() int
}

// FatalError stops retries immediately.
type FatalError struct {
	Err error
}

func (f *FatalError) Error() string { return f.Err.Error() }
func (f *FatalError) Unwrap() error { return f.Err }

// RetryConfig controls the backoff schedule.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       bool
	OnRetry      func(attempt int, err error)
}

// DefaultRetryConfig returns the schedule used by the resolvers.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  4,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// WithRetry runs fn with the default schedule. See WithRetryConfig.
func WithRetry(ctx context.Context, fn func() error, lim *AdaptiveLimiter) error {
	return WithRetryConfig(ctx, fn, lim, DefaultRetryConfig())
}

// WithRetryConfig runs fn until it succeeds, returns a *FatalError, the
// context is done, or cfg.MaxAttempts is exhausted. When lim is non-nil every
// attempt waits for a token first, and throttling responses shrink the rate.
func WithRetryConfig(ctx context.Context, fn func() error, lim *AdaptiveLimiter, cfg RetryConfig) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			if lim != nil {
				lim.Success()
			}
			return nil
		}
		lastErr = err

		var fatal *FatalError
		if asFatal(err, &fatal) {
			return err
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err)
		}

		if lim != nil && isThrottleError(err) {
			lim.Throttled()
		}

		wait := delay
		if cfg.Jitter {
			wait = addJitter(wait)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("all %d attempts failed, last error: %w", cfg.MaxAttempts, lastErr)
}

// addJitter extends delay by up to 25% to avoid synchronized retries.
func addJitter(delay time.Duration) time.Duration {
	bound := int64(delay / 4)
	if bound <= 0 {
		return delay
	}
	return delay + time.Duration(rand.Int63n(bound))
}

func asFatal(err error, target **FatalError) bool {
	f, ok := err.(*FatalError)
	if ok {
		*target = f
	}
	return ok
}

// isThrottleError reports whether err carries a 429 or 5xx status.
func isThrottleError(err error) bool {
	httpErr, ok := err.(HTTPError)
	if !ok {
		return false
	}
	code := httpErr.StatusCode()
	return code == http.StatusTooManyRequests || (code >= 500 && code < 600)
}
