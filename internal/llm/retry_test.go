package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func failWith(kind Kind) MockResponse {
	return MockResponse{Err: &Error{Kind: kind, Provider: ProviderMock, Err: errors.New(kind.String())}}
}

func ok() MockResponse {
	return MockResponse{Content: json.RawMessage(`{"ok":true}`)}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantCalls int
		wantKind  Kind
		wantErr   bool
	}{
		{
			name:      "first attempt succeeds",
			responses: []MockResponse{ok()},
			wantCalls: 1,
		},
		{
			name:      "rate limit then success",
			responses: []MockResponse{failWith(KindRateLimited), ok()},
			wantCalls: 2,
		},
		{
			name:      "unavailable on every attempt",
			responses: []MockResponse{failWith(KindUnavailable), failWith(KindUnavailable), failWith(KindUnavailable), ok()},
			wantCalls: 3,
			wantErr:   true,
			wantKind:  KindUnavailable,
		},
		{
			name:      "truncation is final",
			responses: []MockResponse{failWith(KindTruncated), ok()},
			wantCalls: 1,
			wantErr:   true,
			wantKind:  KindTruncated,
		},
		{
			name:      "invalid response retried once",
			responses: []MockResponse{failWith(KindInvalidResponse), failWith(KindInvalidResponse), ok()},
			wantCalls: 2,
			wantErr:   true,
			wantKind:  KindInvalidResponse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})

			if n := len(mock.Calls()); n != tt.wantCalls {
				t.Errorf("calls = %d, want %d", n, tt.wantCalls)
			}
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(resp.Content) != `{"ok":true}` {
					t.Errorf("content = %s", resp.Content)
				}
				return
			}
			if !IsKind(err, tt.wantKind) {
				t.Fatalf("err = %v, want kind %s", err, tt.wantKind)
			}
		})
	}
}

func TestRetry_ContextCancelledStops(t *testing.T) {
	mock := NewMockProvider(failWith(KindUnavailable), ok())
	cfg := retryConfig()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n := len(mock.Calls()); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestRetry_Backoff(t *testing.T) {
	r := &retrying{cfg: retryConfig()}
	rl := &Error{Kind: KindRateLimited, RetryAfter: 42 * time.Millisecond}
	if got := r.backoff(0, rl); got != 42*time.Millisecond {
		t.Fatalf("backoff = %v, want 42ms", got)
	}

	for n := range 5 {
		d := r.backoff(n, errors.New("x"))
		if d < 0 || d > 12*time.Millisecond {
			t.Errorf("backoff(%d) = %v, want within [0, 12ms]", n, d)
		}
	}
}

func TestErrorMessageAndKind(t *testing.T) {
	err := error(&Error{Kind: KindRateLimited, Provider: ProviderOpenAI, Err: errors.New("429")})
	if got, want := err.Error(), "llm openai: rate limited: 429"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := errors.Join(errors.New("hint"), err)
	if kind, ok := KindOf(wrapped); !ok || kind != KindRateLimited {
		t.Errorf("KindOf = %v, %v", kind, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf(plain error) reported a kind")
	}
}
