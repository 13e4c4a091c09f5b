package llm

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/autocare/autocare/internal/logging"
)

// retryProvider retries transient failures with capped exponential backoff.
type retryProvider struct {
	inner Provider
	cfg   RetryConfig
	log   *slog.Logger
}

// WithRetry wraps p so rate limits, outages and network errors are retried
// up to cfg.MaxAttempts times. An answer that breaks the schema gets one
// more try; truncation and rejected requests are returned at once.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retryProvider{inner: p, cfg: cfg, log: logging.New("llm")}
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	invalidSeen := false
	var err error
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var inv *ErrInvalidResponse
		if errors.As(err, &inv) {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		} else if !transient(err) {
			return nil, err
		}
		if attempt >= r.cfg.MaxAttempts {
			return nil, err
		}

		wait := r.cfg.delay(attempt, err)
		r.log.Debug("retrying llm request",
			"model", r.inner.ModelID(),
			"attempt", attempt,
			"wait", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *retryProvider) ModelID() string {
	return r.inner.ModelID()
}

// transient reports whether another attempt could succeed. Unknown errors
// are usually transport failures, so they count.
func transient(err error) bool {
	var (
		maxTok *ErrMaxTokensExceeded
		rej    *ErrRejected
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.As(err, &maxTok), errors.As(err, &rej):
		return false
	}
	return true
}

// delay is the pause after the given failed attempt (1-based). A server's
// Retry-After is honored up to MaxWait; otherwise the wait grows by
// Multiplier with ±20% jitter.
func (c RetryConfig) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return min(rl.RetryAfter, c.MaxWait)
	}

	base := float64(c.InitialWait) * math.Pow(c.Multiplier, float64(attempt-1))
	base = min(base, float64(c.MaxWait))
	jittered := base * (0.8 + 0.4*rand.Float64())
	return time.Duration(max(jittered, 0))
}
