// Package v1 provides the v1 HTTP handlers.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/fulfillment/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Chat history
	e.GET("/v1/sessions/:session_id/history", h.GetSessionHistory)
	e.POST("/v1/sessions/:session_id/summary", h.SummarizeSession)

	// LLM operations
	e.POST("/v1/location", h.GetLocation)
	e.POST("/v1/summaries", h.SummarizeConversation)
	e.POST("/v1/summaries/bulk", h.SummarizeConversations)
	e.POST("/v1/callbacks/tag", h.TagCallback)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
