package azure

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), DefaultRetryConfig(), func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Retry() error: %v", err)
	}
	if result != "ok" {
		t.Errorf("Retry() = %q, want %q", result, "ok")
	}
	if calls != 1 {
		t.Errorf("called %d times, want 1", calls)
	}
}

func TestRetry_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	cfg := RetryConfig{MaxAttempts: 3, BaseDelay: 1 * time.Millisecond, MaxDelay: 10 * time.Millisecond}
	result, err := Retry(context.Background(), cfg, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, fmt.Errorf("transient error")
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Retry() error: %v", err)
	}
	if result != 42 {
		t.Errorf("Retry() = %d, want 42", result)
	}
	if calls != 3 {
		t.Errorf("called %d times, want 3", calls)
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	calls := 0
	cfg := RetryConfig{MaxAttempts: 3, BaseDelay: 1 * time.Millisecond, MaxDelay: 10 * time.Millisecond}
	_, err := Retry(context.Background(), cfg, func() (string, error) {
		calls++
		return "", fmt.Errorf("persistent error %d", calls)
	})
	if err == nil {
		t.Fatal("Retry() should return error when all attempts fail")
	}
	if calls != 3 {
		t.Errorf("called %d times, want 3", calls)
	}
}

func TestRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	cfg := RetryConfig{MaxAttempts: 3, BaseDelay: 1 * time.Second, MaxDelay: 5 * time.Second}
	_, err := Retry(ctx, cfg, func() (string, error) {
		calls++
		return "", fmt.Errorf("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Retry() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("called %d times, want 1 (no retries after cancellation)", calls)
	}
}

func TestRetry_ZeroConfig(t *testing.T) {
	// Zero attempts should default to 3
	calls := 0
	cfg := RetryConfig{BaseDelay: 1 * time.Millisecond, MaxDelay: 5 * time.Millisecond}
	_, err := Retry(context.Background(), cfg, func() (string, error) {
		calls++
		return "", fmt.Errorf("fail")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != DefaultMaxRetryAttempts {
		t.Errorf("called %d times, want %d (default)", calls, DefaultMaxRetryAttempts)
	}
}

func TestBackoffDelay_Exponential(t *testing.T) {
	base := 100 * time.Millisecond
	max := 10 * time.Second

	d0 := backoffDelay(0, base, max)
	d1 := backoffDelay(1, base, max)
	d2 := backoffDelay(2, base, max)

	// With jitter, delays are not exact but should follow exponential pattern
	if d0 <= 0 || d0 > base {
		t.Errorf("backoffDelay(0) = %v, expected (0, %v]", d0, base)
	}
	if d1 <= 0 || d1 > 2*base {
		t.Errorf("backoffDelay(1) = %v, expected (0, %v]", d1, 2*base)
	}
	if d2 <= 0 || d2 > 4*base {
		t.Errorf("backoffDelay(2) = %v, expected (0, %v]", d2, 4*base)
	}
}

func TestBackoffDelay_CappedAtMax(t *testing.T) {
	base := 100 * time.Millisecond
	max := 150 * time.Millisecond

	d := backoffDelay(10, base, max)
	if d > max {
		t.Errorf("backoffDelay(10) = %v, exceeds max %v", d, max)
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxAttempts != DefaultMaxRetryAttempts {
		t.Errorf("MaxAttempts = %d, want %d", cfg.MaxAttempts, DefaultMaxRetryAttempts)
	}
	if cfg.BaseDelay != DefaultRetryBaseDelay {
		t.Errorf("BaseDelay = %v, want %v", cfg.BaseDelay, DefaultRetryBaseDelay)
	}
	if cfg.MaxDelay != DefaultRetryMaxDelay {
		t.Errorf("MaxDelay = %v, want %v", cfg.MaxDelay, DefaultRetryMaxDelay)
	}
}
