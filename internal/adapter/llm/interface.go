// Package llm provides the client for the LLM service.
package llm

import (
	"context"
	"time"

	"github.com/xiaot623/gogo/fulfillment/internal/domain"
)

// LLMClient defines the interface for LLM service calls.
type LLMClient interface {
	// Send posts payload to the LLM service. timeout <= 0 uses the client default.
	Send(ctx context.Context, payload domain.Payload, timeout time.Duration) (*Response, error)
}

// Ensure Client implements LLMClient interface.
var _ LLMClient = (*Client)(nil)
