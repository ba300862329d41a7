package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/fulfillment/internal/domain"
)

// LLM failures are not HTTP errors: every operation answers 200 and uses null
// for the no-result outcome.

// GetLocation extracts a location from a user message.
// POST /v1/location
func (h *Handler) GetLocation(c echo.Context) error {
	var req domain.LocationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Text == "" {
		return badRequest(c, "text is required")
	}

	text, ok := h.service.ForSession(req.SessionID).GetLocation(c.Request().Context(), req.Text)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"location": domain.Result{Text: text, OK: ok},
	})
}

// SummarizeConversation summarizes a single conversation.
// POST /v1/summaries
func (h *Handler) SummarizeConversation(c echo.Context) error {
	var req domain.SummaryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Conversation == "" {
		return badRequest(c, "conversation is required")
	}

	text, ok := h.service.ForSession(req.SessionID).SummarizeConversation(c.Request().Context(), req.Conversation, req.Prompt)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"summary": domain.Result{Text: text, OK: ok},
	})
}

// SummarizeConversations summarizes several conversations keyed by session id.
// POST /v1/summaries/bulk
func (h *Handler) SummarizeConversations(c echo.Context) error {
	var req domain.BulkSummaryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.Conversations) == 0 {
		return badRequest(c, "conversations is required")
	}

	results := h.service.ForSession(req.SessionID).SummarizeConversations(c.Request().Context(), req.Conversations, req.Prompt)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"summaries": results,
	})
}

// TagCallback tags a callback request from its summary.
// POST /v1/callbacks/tag
func (h *Handler) TagCallback(c echo.Context) error {
	var req domain.TagCallbackRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Summary == "" {
		return badRequest(c, "summary is required")
	}

	text, ok := h.service.ForSession(req.SessionID).TagCallback(c.Request().Context(), req.TagRequest)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tags": domain.Result{Text: text, OK: ok},
	})
}
