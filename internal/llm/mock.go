package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one canned reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// Responder builds a reply for a request the queue has no answer for.
type Responder func(req Request) MockResponse

// MockProvider replays canned replies in order and records every request.
// Once the queue is drained it asks its Responder, or fails with
// ErrProviderUnavailable when there is none.
type MockProvider struct {
	mu        sync.Mutex
	queue     []MockResponse
	responder Responder

	Calls []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// NewOfflineProvider answers every request without a network call. Schema
// requests get the emptiest document the schema accepts, which for a second
// opinion is "no match".
func NewOfflineProvider() *MockProvider {
	return &MockProvider{responder: emptyAnswer}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var next MockResponse
	switch {
	case len(m.queue) > 0:
		next, m.queue = m.queue[0], m.queue[1:]
	case m.responder != nil:
		next = m.responder(req)
	default:
		return nil, &ErrProviderUnavailable{Err: errors.New("mock: no responses queued")}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      m.ModelID(),
		StopReason: StopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another reply.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// CallCount returns how many requests Generate has seen.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func emptyAnswer(req Request) MockResponse {
	if req.Schema == nil {
		return MockResponse{Content: json.RawMessage(`""`)}
	}
	b, err := json.Marshal(zeroValue(req.Schema.Definition))
	if err != nil {
		return MockResponse{Err: &ErrInvalidResponse{Err: err}}
	}
	return MockResponse{Content: b}
}

// zeroValue returns null for nullable types, the schema minimum for numbers
// and an object holding only the required properties.
func zeroValue(def map[string]any) any {
	var types []string
	switch t := def["type"].(type) {
	case string:
		types = []string{t}
	case []any:
		types = stringList(t)
	}
	for _, t := range types {
		if t == "null" {
			return nil
		}
	}
	if enum, ok := def["enum"].([]any); ok && len(enum) > 0 {
		return enum[0]
	}

	kind := ""
	if len(types) > 0 {
		kind = types[0]
	}
	switch kind {
	case "object":
		out := map[string]any{}
		props, _ := def["properties"].(map[string]any)
		req, _ := def["required"].([]any)
		for _, name := range stringList(req) {
			sub, _ := props[name].(map[string]any)
			out[name] = zeroValue(sub)
		}
		return out
	case "array":
		return []any{}
	case "number", "integer":
		if lo, ok := number(def["minimum"]); ok {
			return lo
		}
		return 0
	case "boolean":
		return false
	default:
		return ""
	}
}
