package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xiaot623/gogo/fulfillment/internal/domain"
	"github.com/xiaot623/gogo/fulfillment/internal/repository"
)

// GetChatHistory returns the messages of a session oldest first. A session
// without a history document fails with *domain.HistoryNotFoundError before
// its messages are read.
func (s *Service) GetChatHistory(ctx context.Context, sessionID string) (domain.History, error) {
	if sessionID == "" || strings.Contains(sessionID, "/") {
		return nil, &domain.HistoryNotFoundError{SessionID: sessionID}
	}

	path := repository.DocPath(domain.ChatHistoryCollection, sessionID)
	exists, err := s.store.Exists(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check chat history: %w", err)
	}
	if !exists {
		return nil, &domain.HistoryNotFoundError{SessionID: sessionID}
	}

	it := s.store.Stream(ctx, path, domain.MessagesCollection)
	defer it.Stop()

	history := domain.History{}
	for {
		doc, err := it.Next()
		if err == repository.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read chat messages: %w", err)
		}
		history = append(history, domain.NewRecord(doc.Data, doc.CreateTime))
	}

	history.SortByCreateTime()
	return history, nil
}

// SummarizeSession summarizes what the user said in a session. It fails only
// when the history cannot be read; an LLM failure is the no-result outcome.
func (s *Service) SummarizeSession(ctx context.Context, sessionID, overridePrompt string) (domain.Result, error) {
	history, err := s.GetChatHistory(ctx, sessionID)
	if err != nil {
		return domain.Result{}, err
	}
	text, ok := s.ForSession(sessionID).SummarizeConversation(ctx, history.UserTranscript(), overridePrompt)
	return domain.Result{Text: text, OK: ok}, nil
}
