package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies a provider failure.
type Kind int

const (
	// KindUnavailable covers network errors and provider-side failures.
	KindUnavailable Kind = iota
	// KindRateLimited is an HTTP 429 answer.
	KindRateLimited
	// KindInvalidResponse is output that is not JSON or misses the schema.
	KindInvalidResponse
	// KindTruncated is output cut off at MaxTokens.
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "max tokens exceeded"
	}
	return "provider unavailable"
}

// Error is returned by every Provider for a failed request.
type Error struct {
	Kind       Kind
	Provider   string
	RetryAfter time.Duration   // set by the provider on KindRateLimited, if known
	Content    json.RawMessage // raw output for KindInvalidResponse and KindTruncated
	Err        error
}

func (e *Error) Error() string {
	msg := "llm"
	if e.Provider != "" {
		msg += " " + e.Provider
	}
	msg += ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries an *Error of kind k.
func IsKind(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}

func invalidResponse(content json.RawMessage, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidResponse, Content: content, Err: fmt.Errorf(format, args...)}
}

func truncated(provider string, content json.RawMessage) *Error {
	return &Error{Kind: KindTruncated, Provider: provider, Content: content}
}

// apiError classifies a failed SDK call by its HTTP status.
func apiError(provider string, status int, err error) *Error {
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimited, Provider: provider, Err: err}
	}
	return &Error{Kind: KindUnavailable, Provider: provider, Err: err}
}
