package remote

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func testPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
		Retryable:   IsRetryable,
	}
}

func TestDoSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := testPolicy().Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoRetriesServerErrors(t *testing.T) {
	calls := 0
	err := testPolicy().Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &APIError{Status: 503, Message: "unavailable"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected recovery on third attempt, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	err := testPolicy().Do(context.Background(), func(ctx context.Context) error {
		calls++
		return &APIError{Status: 500, Message: "boom"}
	})
	if err == nil {
		t.Fatal("expected final error after exhausting attempts")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 500 {
		t.Errorf("returned error should be the last attempt's: %v", err)
	}
}

func TestDoStopsOnClientError(t *testing.T) {
	calls := 0
	err := testPolicy().Do(context.Background(), func(ctx context.Context) error {
		calls++
		return &APIError{Status: 404, Message: "not found"}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("client errors must not be retried, calls = %d", calls)
	}
}

func TestDoHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := testPolicy()
	p.BaseDelay = time.Minute
	p.MaxDelay = time.Minute

	err := p.Do(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return &APIError{Status: 500, Message: "boom"}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "connection refused" }
func (fakeNetError) Timeout() bool   { return true }
func (fakeNetError) Temporary() bool { return true }

var _ net.Error = fakeNetError{}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"500 response", &APIError{Status: 500}, KindServer},
		{"503 response", &APIError{Status: 503}, KindServer},
		{"404 response", &APIError{Status: 404}, KindClient},
		{"422 response", &APIError{Status: 422}, KindClient},
		{"auth failure", &AuthError{Message: "expired"}, KindClient},
		{"wrapped auth failure", errors.Join(errors.New("op"), &AuthError{}), KindClient},
		{"deadline", context.DeadlineExceeded, KindNetwork},
		{"net error", fakeNetError{}, KindNetwork},
		{"unknown", errors.New("weird"), KindNetwork},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Errorf("Classify(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsAuthError(t *testing.T) {
	if !IsAuthError(&AuthError{Message: "x"}) {
		t.Error("direct AuthError not detected")
	}
	if IsAuthError(&APIError{Status: 500}) {
		t.Error("APIError misdetected as auth error")
	}
}
