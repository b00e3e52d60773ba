package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:    2,
		BackoffFactor: 2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
	}
}

func TestRetry_SuccessOnFirstTry(t *testing.T) {
	calls := 0
	err := NewRetrier(fastConfig()).Do(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	calls := 0
	err := NewRetrier(fastConfig()).Do(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("temporary")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetry_MaxRetriesExceeded(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := NewRetrier(fastConfig()).Do(context.Background(), "op", func(context.Context) error {
		calls++
		return permanent
	})

	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 3, calls)
}

func TestRetry_NotRetryable(t *testing.T) {
	fatal := errors.New("unauthorized")
	cfg := fastConfig()
	cfg.Retryable = func(err error) bool { return !errors.Is(err, fatal) }

	calls := 0
	err := NewRetrier(cfg).Do(context.Background(), "op", func(context.Context) error {
		calls++
		return fatal
	})

	require.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig()
	cfg.InitialDelay = time.Second
	cfg.MaxDelay = time.Second

	err := NewRetrier(cfg).Do(ctx, "op", func(context.Context) error {
		cancel()
		return errors.New("failed after cancel")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetry_DelayCappedByMaxDelay(t *testing.T) {
	r := NewRetrier(&Config{MaxDelay: 10 * time.Millisecond, Jitter: 2 * time.Millisecond})

	for range 20 {
		wait := r.next(time.Second)
		assert.GreaterOrEqual(t, wait, 10*time.Millisecond)
		assert.Less(t, wait, 12*time.Millisecond)
	}
}
