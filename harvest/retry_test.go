package harvest_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/arxharvest"
	"github.com/fwojciec/arxharvest/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDelays is used for fast unit tests.
var noDelays = []time.Duration{0, 0, 0}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "<html>content</html>", nil
		}

		html, err := harvest.FetchWithRetryDelays(context.Background(), "https://example.com", fetcher, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries on failure and succeeds", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			if attempts < 4 {
				return "", errors.New("transient error")
			}
			return "<html>success</html>", nil
		}

		html, err := harvest.FetchWithRetryDelays(context.Background(), "https://example.com", fetcher, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>success</html>", html)
		assert.Equal(t, 4, attempts)
	})

	t.Run("returns the last error after exhausting retries", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "", fmt.Errorf("persistent error %d", attempts)
		}

		_, err := harvest.FetchWithRetryDelays(context.Background(), "https://example.com", fetcher, nil, noDelays)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "persistent error 4")
		assert.Equal(t, 4, attempts) // 1 initial + 3 retries = 4 total attempts
	})

	t.Run("does not retry invalid input", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "", arxharvest.Errorf(arxharvest.EINVALID, "unsupported URL scheme")
		}

		_, err := harvest.FetchWithRetryDelays(context.Background(), "ftp://example.com", fetcher, nil, noDelays)

		require.Error(t, err)
		assert.Equal(t, arxharvest.EINVALID, arxharvest.ErrorCode(err))
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops during backoff when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			cancel()
			return "", errors.New("transient error")
		}

		_, err := harvest.FetchWithRetryDelays(ctx, "https://example.com", fetcher, nil, []time.Duration{time.Minute})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})

	t.Run("logs each retry attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			if attempts < 4 {
				return "", errors.New("transient error")
			}
			return "<html>success</html>", nil
		}

		var logs []string
		logger := func(format string, args ...any) {
			logs = append(logs, fmt.Sprintf(format, args...))
		}

		html, err := harvest.FetchWithRetryDelays(context.Background(), "https://example.com/page", fetcher, logger, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>success</html>", html)
		require.Len(t, logs, 3)
		assert.Contains(t, logs[0], "attempt 2")
		assert.Contains(t, logs[2], "attempt 4")
	})

	t.Run("number of retries matches delay count", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "", errors.New("always fail")
		}

		// With 2 delays, we should have 3 total attempts (1 + 2 retries)
		twoDelays := []time.Duration{0, 0}
		_, err := harvest.FetchWithRetryDelays(context.Background(), "https://example.com", fetcher, nil, twoDelays)

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("default delays back off exponentially", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}, harvest.DefaultRetryDelays())
	})
}
