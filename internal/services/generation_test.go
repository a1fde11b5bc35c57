package services

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRetryingClient(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond}

	t.Run(`retries until a call succeeds`, func(t *testing.T) {
		failures := 2
		inner := newFakeClient(func(context.Context, string, string, float32) (string, error) {
			if failures > 0 {
				failures--
				return "", errors.New("temporarily unavailable")
			}
			return "ok", nil
		})

		result, err := NewRetryingClient(inner, policy, quietLogger()).Generate(context.Background(), "sys", "user", 0.3, 64)
		require.NoError(t, err)
		require.Equal(t, "ok", result)
		require.Equal(t, 3, inner.callCount())
	})

	t.Run(`gives up after the last attempt`, func(t *testing.T) {
		inner := failWith(&ServiceError{Provider: "claude", Err: errors.New("rate limited")})

		_, err := NewRetryingClient(inner, policy, quietLogger()).Generate(context.Background(), "sys", "user", 0.3, 64)
		require.Equal(t, 3, inner.callCount())

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		require.Equal(t, "claude", svcErr.Provider)
	})

	t.Run(`plain errors become service errors`, func(t *testing.T) {
		inner := failWith(errors.New("boom"))

		_, err := NewRetryingClient(inner, RetryPolicy{}, quietLogger()).Generate(context.Background(), "sys", "user", 0.3, 64)
		require.Equal(t, 1, inner.callCount())

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		require.Equal(t, "generation", svcErr.Provider)
	})

	t.Run(`stops when the context is cancelled`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		inner := newFakeClient(func(context.Context, string, string, float32) (string, error) {
			cancel()
			return "", errors.New("interrupted")
		})

		slow := RetryPolicy{MaxAttempts: 5, InitialDelay: time.Hour}
		_, err := NewRetryingClient(inner, slow, quietLogger()).Generate(ctx, "sys", "user", 0.3, 64)
		require.Equal(t, 1, inner.callCount())
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run(`bounds each attempt with the timeout`, func(t *testing.T) {
		inner := newFakeClient(func(ctx context.Context, _, _ string, _ float32) (string, error) {
			_, ok := ctx.Deadline()
			require.True(t, ok)
			return "ok", nil
		})

		bounded := RetryPolicy{MaxAttempts: 1, Timeout: time.Minute}
		_, err := NewRetryingClient(inner, bounded, quietLogger()).Generate(context.Background(), "sys", "user", 0.3, 64)
		require.NoError(t, err)
	})
}

func TestRetryingClientRateLimit(t *testing.T) {
	t.Run(`waits for the limiter`, func(t *testing.T) {
		inner := replyWith("ok")
		limited := NewRetryingClient(inner, RetryPolicy{MaxAttempts: 1, RequestsPerMinute: 60000}, quietLogger())

		for i := 0; i < rateBurst+2; i++ {
			_, err := limited.Generate(context.Background(), "sys", "user", 0.3, 64)
			require.NoError(t, err)
		}
		require.Equal(t, rateBurst+2, inner.callCount())
	})

	t.Run(`cancelled context while waiting`, func(t *testing.T) {
		inner := replyWith("ok")
		limited := NewRetryingClient(inner, RetryPolicy{MaxAttempts: 1, RequestsPerMinute: 1}, quietLogger())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := limited.Generate(ctx, "sys", "user", 0.3, 64)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		require.Equal(t, 0, inner.callCount())
	})
}
