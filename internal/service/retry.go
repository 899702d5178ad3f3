package service

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/inkwell-labs/inkwell/internal/blob"
)

// Read retry policy: bounded exponential backoff. Mutations are never
// retried; a repeated Put after an ambiguous failure could silently win a
// revision race the user never saw.
const (
	retryBase = 250 * time.Millisecond
	retryCap  = 4 * time.Second
	retryMax  = 4 // retries after the first attempt
)

// withReadRetry runs fn with backoff. NotFound is a result, not an outage,
// and returns immediately.
func withReadRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(retryMax, retry.WithCappedDuration(retryCap, retry.NewExponential(retryBase)))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil || errors.Is(err, blob.ErrNotFound) || errors.Is(err, context.Canceled) {
			return err
		}
		return retry.RetryableError(err)
	})
}
