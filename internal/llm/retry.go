package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retrying re-sends failed requests with jittered exponential backoff.
type retrying struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps p so transient failures are retried up to
// cfg.MaxAttempts times in total.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &retrying{inner: p, cfg: cfg}
}

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err           error
		invalidBefore bool
	)
	for attempt := 1; ; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt == r.cfg.MaxAttempts || !shouldRetry(err, &invalidBefore) {
			return nil, err
		}

		t := time.NewTimer(r.backoff(attempt-1, err))
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

func (r *retrying) ModelID() string {
	return r.inner.ModelID()
}

// shouldRetry reports whether err is transient. Truncation never improves
// on a retry; an invalid response gets one more chance.
func shouldRetry(err error, invalidBefore *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch kind, _ := KindOf(err); kind {
	case KindTruncated:
		return false
	case KindInvalidResponse:
		if *invalidBefore {
			return false
		}
		*invalidBefore = true
	}
	return true
}

// backoff returns the wait before retry n (0-based). A provider-supplied
// Retry-After wins.
func (r *retrying) backoff(n int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindRateLimited && e.RetryAfter > 0 {
		return e.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(n))
	wait = min(wait, float64(r.cfg.MaxWait))
	jitter := 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(wait*(1+jitter), 0))
}
