package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var (
	okReply     = MockResponse{Content: json.RawMessage(`{"symptom":null}`)}
	downReply   = MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("502 bad gateway")}}
	badReply    = MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`brakes`), Err: errors.New("not json")}}
	limitReply  = MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}
	cutReply    = MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"symp`)}}
	rejectReply = MockResponse{Err: &ErrRejected{Status: 401, Err: errors.New("bad key")}}
	netReply    = MockResponse{Err: errors.New("connection reset by peer")}
)

func TestRetry_Policy(t *testing.T) {
	tests := []struct {
		name      string
		replies   []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{"first attempt succeeds", []MockResponse{okReply}, 1, false},
		{"outage then success", []MockResponse{downReply, okReply}, 2, false},
		{"network error then success", []MockResponse{netReply, okReply}, 2, false},
		{"rate limit then success", []MockResponse{limitReply, okReply}, 2, false},
		{"every attempt down", []MockResponse{downReply, downReply, downReply, okReply}, 3, true},
		{"invalid answer retried once", []MockResponse{badReply, okReply}, 2, false},
		{"invalid answer twice gives up", []MockResponse{badReply, badReply, okReply}, 2, true},
		{"invalid after outage still gets its retry", []MockResponse{downReply, badReply, okReply}, 3, false},
		{"truncation not retried", []MockResponse{cutReply, okReply}, 1, true},
		{"rejection not retried", []MockResponse{rejectReply, okReply}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.replies...)
			_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_KeepsErrorType(t *testing.T) {
	mock := NewMockProvider(cutReply)
	_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestRetry_CancelledContextMakesNoCall(t *testing.T) {
	mock := NewMockProvider(okReply)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, fastRetry()).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("calls = %d, want 0", mock.CallCount())
	}
}

func TestRetry_CancelDuringBackoff(t *testing.T) {
	cfg := fastRetry()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour
	mock := NewMockProvider(downReply, okReply)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(okReply)
	if _, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	if got := WithRetry(NewMockProvider(), fastRetry()).ModelID(); got != "mock" {
		t.Fatalf("ModelID = %q, want mock", got)
	}
}

func TestRetryConfig_Delay(t *testing.T) {
	cfg := RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}
	plain := errors.New("down")

	tests := []struct {
		attempt int
		err     error
		lo, hi  time.Duration
	}{
		{1, plain, 80 * time.Millisecond, 120 * time.Millisecond},
		{2, plain, 160 * time.Millisecond, 240 * time.Millisecond},
		{3, plain, 320 * time.Millisecond, 480 * time.Millisecond},
		// Capped at MaxWait before jitter.
		{6, plain, 800 * time.Millisecond, 1200 * time.Millisecond},
		{1, &ErrRateLimit{RetryAfter: 300 * time.Millisecond}, 300 * time.Millisecond, 300 * time.Millisecond},
		{1, &ErrRateLimit{RetryAfter: time.Minute}, time.Second, time.Second},
	}
	for _, tt := range tests {
		for range 20 {
			got := cfg.delay(tt.attempt, tt.err)
			if got < tt.lo-time.Microsecond || got > tt.hi+time.Microsecond {
				t.Fatalf("delay(%d, %v) = %s, want within [%s, %s]", tt.attempt, tt.err, got, tt.lo, tt.hi)
			}
		}
	}
}
