package analyze

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/leofalp/structo/providers/ai"
)

// TransportRetryConfig holds the tuning parameters for opt-in transport
// retry. Zero values are replaced with the defaults documented below when
// the config is passed to [WithTransportRetry].
type TransportRetryConfig struct {
	// MaxRetries is the maximum number of retry attempts after the first
	// transport failure. A value of 2 means the provider is called at most
	// 3 times per loop attempt. Default: 2.
	MaxRetries int

	// InitialBackoff is the wait duration before the first retry attempt.
	// Default: 1s.
	InitialBackoff time.Duration

	// MaxBackoff caps the computed backoff. Default: 30s.
	MaxBackoff time.Duration

	// BackoffFactor is the exponential growth multiplier
	// (backoff = min(InitialBackoff * BackoffFactor^n, MaxBackoff)).
	// Default: 2.0.
	BackoffFactor float64

	// JitterFraction adds random noise in [0, JitterFraction*backoff] to
	// avoid thundering-herd behavior. Default: 0.1.
	JitterFraction float64

	// RetryableFunc reports whether a transport error should be retried.
	// The default retries *ai.TransportError with status 429, 500, 502,
	// 503, or 529.
	RetryableFunc func(error) bool
}

// defaultRetryableStatus retries the transient HTTP statuses. A typed check
// on *ai.TransportError, not a string match, so wrapped errors still work.
func defaultRetryableStatus(err error) bool {
	var transportErr *ai.TransportError
	if !errors.As(err, &transportErr) {
		return false
	}

	switch transportErr.StatusCode {
	case 429, 500, 502, 503, 529:
		return true
	}
	return false
}

func applyTransportRetryDefaults(cfg *TransportRetryConfig) {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 30 * time.Second
	}
	if cfg.BackoffFactor == 0 {
		cfg.BackoffFactor = 2.0
	}
	if cfg.JitterFraction == 0 {
		cfg.JitterFraction = 0.1
	}
	if cfg.RetryableFunc == nil {
		cfg.RetryableFunc = defaultRetryableStatus
	}
}

// computeBackoff returns the backoff duration for the given retry (0-indexed).
func computeBackoff(cfg *TransportRetryConfig, retry int) time.Duration {
	base := float64(cfg.InitialBackoff) * math.Pow(cfg.BackoffFactor, float64(retry))
	if base > float64(cfg.MaxBackoff) {
		base = float64(cfg.MaxBackoff)
	}

	jitter := base * cfg.JitterFraction * rand.Float64() //nolint:gosec // non-cryptographic jitter is intentional
	return time.Duration(base + jitter)
}

// complete performs one provider call, applying the transport retry policy
// when one is configured. On exhaustion the last transport error is returned
// unchanged so callers still see the original *ai.TransportError.
func (a *Analyzer) complete(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	cfg := a.opts.TransportRetry
	if cfg == nil {
		return a.provider.Complete(ctx, request)
	}

	var lastErr error
	for retry := 0; retry <= cfg.MaxRetries; retry++ {
		if retry > 0 {
			backoff := computeBackoff(cfg, retry-1)
			a.opts.Logger.Warn("retrying after transport failure",
				"retry", retry, "backoff", backoff, "error", lastErr)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		response, err := a.provider.Complete(ctx, request)
		if err == nil {
			return response, nil
		}
		lastErr = err

		if !cfg.RetryableFunc(err) {
			return nil, err
		}
	}

	return nil, lastErr
}
