package service

import (
	"context"
	"time"

	"github.com/xiaot623/gogo/fulfillment/internal/adapter/errorreport"
	"github.com/xiaot623/gogo/fulfillment/internal/adapter/llm"
	"github.com/xiaot623/gogo/fulfillment/internal/config"
	"github.com/xiaot623/gogo/fulfillment/internal/metrics"
	"github.com/xiaot623/gogo/fulfillment/internal/repository"
)

// PromptSource resolves prompt templates by id.
type PromptSource interface {
	Prompt(ctx context.Context, promptID string) string
}

type Service struct {
	store     repository.Reader
	prompts   PromptSource
	llmClient llm.LLMClient
	reporter  errorreport.Reporter
	config    *config.Config
	metrics   *metrics.Metrics
}

// New wires the service. A nil reporter disables error reporting and nil
// metrics disables instrumentation.
func New(store repository.Reader, llmClient llm.LLMClient, reporter errorreport.Reporter, cfg *config.Config, m *metrics.Metrics) *Service {
	if reporter == nil {
		reporter = errorreport.Nop{}
	}
	if cfg == nil {
		cfg = &config.Config{
			LLMTimeout:         llm.DefaultTimeout,
			LLMSummaryTimeout:  30 * time.Second,
			LLMBulkConcurrency: 1,
		}
	}
	return &Service{
		store:     store,
		prompts:   NewPromptResolver(store),
		llmClient: llmClient,
		reporter:  reporter,
		config:    cfg,
		metrics:   m,
	}
}
