package service

import (
	"context"
	"log"

	"github.com/xiaot623/gogo/fulfillment/internal/domain"
	"github.com/xiaot623/gogo/fulfillment/internal/repository"
)

// PromptResolver reads prompt templates from the fixed prompt document.
type PromptResolver struct {
	store repository.Reader
}

// Ensure PromptResolver implements PromptSource interface.
var _ PromptSource = (*PromptResolver)(nil)

// NewPromptResolver creates a resolver on store.
func NewPromptResolver(store repository.Reader) *PromptResolver {
	return &PromptResolver{store: store}
}

// Prompt returns the prompt stored under promptID. It never fails: a missing
// document, a missing key or a non-string value all yield "".
func (p *PromptResolver) Prompt(ctx context.Context, promptID string) string {
	doc, err := p.store.Get(ctx, repository.DocPath(domain.PromptsCollection, domain.PromptsDocument))
	if err != nil {
		log.Printf("WARN: failed to read prompt %q: %v", promptID, err)
		return ""
	}
	if doc == nil {
		return ""
	}
	prompt, _ := doc.Data[promptID].(string)
	return prompt
}
