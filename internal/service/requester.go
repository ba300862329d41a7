package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/xiaot623/gogo/fulfillment/internal/domain"
)

// Requester runs LLM operations on behalf of one chat session. Failures are
// never returned: they are logged, reported with the session id and turned
// into the no-result outcome.
type Requester struct {
	svc       *Service
	sessionID string
}

// ForSession returns a Requester that attributes failures to sessionID.
func (s *Service) ForSession(sessionID string) *Requester {
	return &Requester{svc: s, sessionID: sessionID}
}

// SessionID returns the session failures are attributed to.
func (r *Requester) SessionID() string {
	return r.sessionID
}

// GetLocation asks the LLM service to extract a location from userMessage.
func (r *Requester) GetLocation(ctx context.Context, userMessage string) (string, bool) {
	prompt := r.svc.prompts.Prompt(ctx, domain.PromptGetLocation)
	payload := domain.NewPayload(map[string]string{
		"text":   userMessage,
		"prompt": prompt,
	})
	return r.request(ctx, domain.OperationGetLocation, payload, r.svc.config.LLMTimeout).Value()
}

// SummarizeConversation summarizes conversation. A non-empty overridePrompt
// replaces the stored summarization prompt.
func (r *Requester) SummarizeConversation(ctx context.Context, conversation, overridePrompt string) (string, bool) {
	prompt := r.summaryPrompt(ctx, overridePrompt)
	payload := domain.NewPayload(map[string]string{
		"text":   conversation,
		"prompt": prompt,
	})
	return r.request(ctx, domain.OperationSummarizeConversation, payload, r.svc.config.LLMSummaryTimeout).Value()
}

// SummarizeConversations summarizes each conversation independently, keyed
// by session id. The prompt is resolved once for all entries.
func (r *Requester) SummarizeConversations(ctx context.Context, conversations map[string]string, overridePrompt string) map[string]domain.Result {
	results := make(map[string]domain.Result, len(conversations))
	if len(conversations) == 0 {
		return results
	}
	prompt := r.summaryPrompt(ctx, overridePrompt)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(max(r.svc.config.LLMBulkConcurrency, 1))
	for sessionID, conversation := range conversations {
		g.Go(func() error {
			payload := domain.NewPayload(map[string]string{
				"text":   conversation,
				"prompt": prompt,
			})
			res := r.request(ctx, domain.OperationSummarizeBulk, payload, r.svc.config.LLMSummaryTimeout)

			mu.Lock()
			results[sessionID] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// TagCallback asks the LLM service to tag a callback request. The prompt is
// supplied by the caller.
func (r *Requester) TagCallback(ctx context.Context, req domain.TagRequest) (string, bool) {
	return r.request(ctx, domain.OperationTagCallback, req.Payload(), r.svc.config.LLMTimeout).Value()
}

func (r *Requester) summaryPrompt(ctx context.Context, overridePrompt string) string {
	if overridePrompt != "" {
		return overridePrompt
	}
	return r.svc.prompts.Prompt(ctx, domain.PromptSummarizeConversation)
}

// request sends payload and absorbs any failure.
func (r *Requester) request(ctx context.Context, op domain.Operation, payload domain.Payload, timeout time.Duration) domain.Result {
	requestID := "llm_" + uuid.New().String()[:8]
	startTime := time.Now()

	resp, err := r.svc.llmClient.Send(ctx, payload, timeout)
	r.svc.metrics.Observe(string(op), time.Since(startTime), err)
	if err != nil {
		log.Printf("ERROR: LLM request %s (%s) failed for session %q: %v", requestID, op, r.sessionID, err)
		r.svc.reporter.Report(ctx, err, r.sessionID)
		return domain.Result{}
	}

	return domain.Result{Text: resp.Text(), OK: true}
}
