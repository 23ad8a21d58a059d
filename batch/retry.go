package batch

import (
	"context"
	"time"

	"github.com/fwojciec/readable"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, source string) (string, error)

// RetryFunc is called before each retry with the attempt about to be made
// and the error that caused it.
type RetryFunc func(source string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch until it succeeds, waiting delays[i] before
// retry i. Errors carrying EINVALID or ENOTFOUND are returned at once since
// repeating the request cannot change them.
func FetchWithRetry(ctx context.Context, source string, fetch FetchFunc, delays []time.Duration, onRetry RetryFunc) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, source)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if onRetry != nil {
			onRetry(source, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch readable.ErrorCode(err) {
	case readable.EINVALID, readable.ENOTFOUND:
		return false
	}
	return true
}
