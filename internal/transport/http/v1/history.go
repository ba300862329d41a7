package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/fulfillment/internal/domain"
)

// GetSessionHistory returns the chat history of a session.
// GET /v1/sessions/:session_id/history
func (h *Handler) GetSessionHistory(c echo.Context) error {
	sessionID := c.Param("session_id")
	ctx := c.Request().Context()

	history, err := h.service.GetChatHistory(ctx, sessionID)
	if errors.Is(err, domain.ErrHistoryNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"messages":   history,
	})
}

// SummarizeSession summarizes the user side of a session's chat history.
// POST /v1/sessions/:session_id/summary
func (h *Handler) SummarizeSession(c echo.Context) error {
	sessionID := c.Param("session_id")
	ctx := c.Request().Context()

	var req domain.SessionSummaryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	res, err := h.service.SummarizeSession(ctx, sessionID, req.Prompt)
	if errors.Is(err, domain.ErrHistoryNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"summary":    res,
	})
}
