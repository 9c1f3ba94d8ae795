package harvest

import (
	"context"
	"time"

	"github.com/fwojciec/arxharvest"
)

// FetchFunc fetches the body of a single page.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches a URL, retrying transient failures with
// exponential backoff. It makes up to 4 attempts with delays of 1s, 2s,
// 4s between them. The logger, if provided, is called before each retry.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc) (string, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but with configurable
// delays, one per retry. Invalid-input failures are returned without
// retrying: re-requesting a malformed URL cannot succeed.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		if arxharvest.ErrorCode(err) == arxharvest.EINVALID {
			return "", err
		}
		lastErr = err

		if attempt >= len(delays) {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return "", lastErr
}
