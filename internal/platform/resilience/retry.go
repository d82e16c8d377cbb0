package resilience

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	crerr "github.com/cockroachdb/errors"
)

// ErrTransient marks failures worth retrying: dropped connections,
// serialization conflicts, resource exhaustion.
var ErrTransient = crerr.New("transient dependency failure")

// MarkTransient tags err as retryable while keeping its message and chain.
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	return crerr.Mark(err, ErrTransient)
}

func IsTransient(err error) bool {
	return err != nil && crerr.Is(err, ErrTransient)
}

type RetryConfig struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:     3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

func NormalizeRetryConfig(cfg RetryConfig) RetryConfig {
	defaults := DefaultRetryConfig()
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = defaults.MaxAttempts
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaults.InitialInterval
	}
	if cfg.MaxInterval < cfg.InitialInterval {
		cfg.MaxInterval = cfg.InitialInterval
	}
	return cfg
}

// Retrier runs writes with exponential backoff, retrying only transient
// errors. An optional breaker stops hammering a dependency that keeps failing.
type Retrier struct {
	cfg     RetryConfig
	breaker *CircuitBreaker
}

func NewRetrier(cfg RetryConfig, breaker *CircuitBreaker) *Retrier {
	return &Retrier{cfg: NormalizeRetryConfig(cfg), breaker: breaker}
}

func (r *Retrier) Do(ctx context.Context, fn func(context.Context) error) error {
	if r == nil {
		return fn(ctx)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialInterval
	b.MaxInterval = r.cfg.MaxInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if r.breaker != nil {
			if err := r.breaker.Allow(); err != nil {
				return struct{}{}, backoff.Permanent(err)
			}
		}

		err := fn(ctx)
		r.record(err)
		if err != nil && !IsTransient(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(r.cfg.MaxAttempts)))
	return err
}

func (r *Retrier) record(err error) {
	if r.breaker == nil {
		return
	}
	if IsTransient(err) {
		r.breaker.RecordFailure()
		return
	}
	r.breaker.RecordSuccess()
}
