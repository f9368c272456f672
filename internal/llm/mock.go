package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one canned reply for MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays canned responses in order and records every request.
// With no responses left it reports the provider as unavailable.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []Request
}

// NewMockProvider queues responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if len(m.responses) == 0 {
		return nil, &Error{Kind: KindUnavailable, Provider: ProviderMock, Err: errors.New("no scripted response")}
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	if err := ValidateJSON(req.Schema, next.Content); err != nil {
		return nil, err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: "mock", StopReason: "end"}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// Add queues another response.
func (m *MockProvider) Add(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// Calls returns the requests received so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}
