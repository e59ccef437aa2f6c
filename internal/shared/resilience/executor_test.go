package resilience

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func TestExecuteRetriesTransientStatus(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
	})

	attempts := 0
	err := exec.Execute(context.Background(), "submit", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return &HTTPStatusError{Operation: "submit", StatusCode: http.StatusBadGateway}
		}
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestExecuteDoesNotRetryClientError(t *testing.T) {
	exec := NewExecutor(Config{RetryMaxAttempts: 3, RetryInitialBackoff: time.Millisecond})

	attempts := 0
	err := exec.Execute(context.Background(), "submit", func(context.Context) error {
		attempts++
		return &HTTPStatusError{Operation: "submit", StatusCode: http.StatusBadRequest, Body: "bad"}
	}, nil)
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestExecuteOpensCircuitAfterFailures(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:        1,
		RetryInitialBackoff:     time.Millisecond,
		BreakerEnabled:          true,
		BreakerMinRequests:      2,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      time.Minute,
		BreakerHalfOpenMaxCalls: 1,
	})

	errDown := errors.New("down")
	for i := 0; i < 2; i++ {
		err := exec.Execute(context.Background(), "chat", func(context.Context) error { return errDown }, nil)
		if !errors.Is(err, errDown) {
			t.Fatalf("iteration %d: expected errDown, got %v", i, err)
		}
	}

	err := exec.Execute(context.Background(), "chat", func(context.Context) error {
		t.Fatalf("circuit should be open")
		return nil
	}, nil)
	if !errors.Is(err, gobreaker.ErrOpenState) || !IsCircuitOpen(err) {
		t.Fatalf("expected open state error, got %v", err)
	}
}

func TestNilExecutorCallsOnce(t *testing.T) {
	var exec *Executor
	calls := 0
	_ = exec.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return errors.New("x")
	}, nil)
	if calls != 1 {
		t.Fatalf("expected single call, got %d", calls)
	}
}

func TestClassifyHTTP(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		retryable bool
		record    bool
	}{
		{"canceled", context.Canceled, false, false},
		{"too many requests", &HTTPStatusError{StatusCode: http.StatusTooManyRequests}, true, true},
		{"unauthorized", &HTTPStatusError{StatusCode: http.StatusUnauthorized}, false, false},
		{"plain", errors.New("boom"), false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyHTTP(tc.err)
			if got.Retryable != tc.retryable || got.RecordFailure != tc.record {
				t.Fatalf("unexpected classification: %+v", got)
			}
		})
	}
}
