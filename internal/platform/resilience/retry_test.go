package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func TestRetrier_RetriesTransient(t *testing.T) {
	r := NewRetrier(fastRetryConfig(3), nil)

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return MarkTransient(fmt.Errorf("connection reset"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetrier_StopsOnPermanent(t *testing.T) {
	r := NewRetrier(fastRetryConfig(5), nil)
	permanent := errors.New("constraint violation")

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected single call, got %d", calls)
	}
}

func TestRetrier_GivesUpAfterMaxAttempts(t *testing.T) {
	r := NewRetrier(fastRetryConfig(2), nil)

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return MarkTransient(errors.New("timeout"))
	})
	if !IsTransient(err) {
		t.Fatalf("expected transient error to surface, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestRetrier_OpenBreakerShortCircuits(t *testing.T) {
	breaker := NewCircuitBreaker(1, time.Minute, 1)
	breaker.RecordFailure()
	r := NewRetrier(fastRetryConfig(3), breaker)

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no calls through open breaker, got %d", calls)
	}
}

func TestMarkTransient(t *testing.T) {
	if MarkTransient(nil) != nil {
		t.Fatalf("expected nil passthrough")
	}
	err := fmt.Errorf("replace week: %w", MarkTransient(errors.New("broken pipe")))
	if !IsTransient(err) {
		t.Fatalf("expected wrapped transient error to be detected")
	}
	if IsTransient(errors.New("plain")) {
		t.Fatalf("plain error must not be transient")
	}
}
