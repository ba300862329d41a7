package helpers

import (
	"context"
	"testing"

	"github.com/xiaot623/gogo/fulfillment/internal/domain"
	"github.com/xiaot623/gogo/fulfillment/internal/repository"
)

func NewTestDocStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()

	s, err := repository.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// SeedPrompts merges prompts into the prompt configuration document.
func SeedPrompts(t *testing.T, s repository.Writer, prompts map[string]any) {
	t.Helper()

	path := repository.DocPath(domain.PromptsCollection, domain.PromptsDocument)
	if err := s.SetFields(context.Background(), path, prompts); err != nil {
		t.Fatalf("failed to seed prompts: %v", err)
	}
}

// SeedSession creates a chat history document with messages in order.
func SeedSession(t *testing.T, s repository.Writer, sessionID string, messages ...map[string]any) {
	t.Helper()

	ctx := context.Background()
	path := repository.DocPath(domain.ChatHistoryCollection, sessionID)
	if err := s.SetFields(ctx, path, map[string]any{"session_id": sessionID}); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	for _, m := range messages {
		if _, err := s.Add(ctx, path, domain.MessagesCollection, m); err != nil {
			t.Fatalf("failed to seed message: %v", err)
		}
	}
}
