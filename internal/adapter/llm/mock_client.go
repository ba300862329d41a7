package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/xiaot623/gogo/fulfillment/internal/domain"
)

// MockClient is a mock implementation of LLMClient for local runs.
type MockClient struct{}

// NewMockClient creates a new mock LLM client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements LLMClient interface.
var _ LLMClient = (*MockClient)(nil)

// Send returns a canned response echoing the request text.
func (m *MockClient) Send(ctx context.Context, payload domain.Payload, timeout time.Duration) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	text := payload.Fields()["text"]
	if text == "" {
		return &Response{StatusCode: 200, Body: []byte("[MOCK] This is a mock response from the LLM client.")}, nil
	}
	body := fmt.Sprintf("[MOCK] Received %q. This is a mock response.", truncate(text, 100))
	return &Response{StatusCode: 200, Body: []byte(body)}, nil
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
