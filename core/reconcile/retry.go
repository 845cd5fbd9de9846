package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// RetryPolicy bounds the retries around a single remote call.
type RetryPolicy struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries uint64
	// Base is the first backoff delay; each retry doubles it.
	Base time.Duration
}

// DefaultRetryPolicy retries three times starting at 200ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, Base: 200 * time.Millisecond}
}

// do runs fn until it succeeds, the retries are spent or ctx is done.
// Context errors and errors wrapping ErrPermanent are returned immediately.
func (p RetryPolicy) do(ctx context.Context, logger *zap.Logger, op, path string, fn func(ctx context.Context) error) error {
	base := p.Base
	if base <= 0 {
		base = time.Millisecond
	}
	backoff := retry.WithMaxRetries(p.MaxRetries, retry.NewExponential(base))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if errors.Is(err, ErrPermanent) {
			logger.Warn("Remote call failed permanently",
				zap.String("op", op),
				zap.String("path", path),
				zap.Error(err),
			)
			return err
		}
		logger.Warn("Remote call failed",
			zap.String("op", op),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return retry.RetryableError(err)
	})
}
