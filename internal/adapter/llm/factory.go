package llm

import (
	"log"
	"time"

	"github.com/xiaot623/gogo/fulfillment/internal/adapter/auth"
)

// ModeMock selects the mock client.
const ModeMock = "MOCK"

// NewLLMClient creates an LLM client for mode. ModeMock returns a MockClient;
// anything else returns a real Client.
func NewLLMClient(mode, serviceURL string, tokens auth.TokenProvider, timeout time.Duration) LLMClient {
	if mode == ModeMock {
		log.Println("LLM_MODE=MOCK detected, using mock LLM client")
		return NewMockClient()
	}

	return NewClient(serviceURL, tokens, timeout)
}
