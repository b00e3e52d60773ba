package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/sandevgo/memobot/pkg/log"
)

type Operation = func(ctx context.Context) error

type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
	// Retryable decides whether err is worth another attempt. Nil retries everything.
	Retryable func(err error) bool
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxRetries:    5,
		BackoffFactor: 2,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      15 * time.Second,
		Jitter:        100 * time.Millisecond,
	}
}

type Retrier struct {
	config *Config
	rnd    *rand.Rand
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{
		config: config,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func NewDefaultRetrier() *Retrier {
	return NewRetrier(NewDefaultConfig())
}

// Do runs op until it succeeds, returns a non retryable error, runs out of
// attempts or ctx is done.
func (r *Retrier) Do(ctx context.Context, name string, op Operation) error {
	logger := log.FromCtx(ctx)
	delay := r.config.InitialDelay

	var err error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}

		if attempt == r.config.MaxRetries || !r.retryable(err) {
			return err
		}

		wait := r.next(delay)
		logger.Warn().
			Err(err).
			Str("operation", name).
			Int("attempt", attempt+1).
			Dur("wait", wait).
			Msg("operation failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		delay = min(time.Duration(float64(delay)*r.config.BackoffFactor), r.config.MaxDelay)
	}
	return err
}

func (r *Retrier) retryable(err error) bool {
	return r.config.Retryable == nil || r.config.Retryable(err)
}

func (r *Retrier) next(delay time.Duration) time.Duration {
	var jitter time.Duration
	if r.config.Jitter > 0 {
		jitter = time.Duration(r.rnd.Int63n(int64(r.config.Jitter)))
	}
	return min(delay, r.config.MaxDelay) + jitter
}
