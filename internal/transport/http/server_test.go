package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/fulfillment/internal/adapter/auth"
	"github.com/xiaot623/gogo/fulfillment/internal/adapter/llm"
	"github.com/xiaot623/gogo/fulfillment/internal/config"
	"github.com/xiaot623/gogo/fulfillment/internal/metrics"
	"github.com/xiaot623/gogo/fulfillment/internal/service"
	"github.com/xiaot623/gogo/fulfillment/tests/helpers"
)

func TestNewServerRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := &config.Config{LLMTimeout: time.Second, LLMSummaryTimeout: time.Second, LLMBulkConcurrency: 1}
	client := llm.NewLLMClient(llm.ModeMock, "", auth.NewStaticTokenProvider("test-token"), cfg.LLMTimeout)
	svc := service.New(helpers.NewTestDocStore(t), client, nil, cfg, metrics.New(reg))
	e := NewServer(svc, reg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/location", strings.NewReader(`{"session_id":"s1","text":"Amsterdam"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fulfillment_llm_requests_total{operation="get_location",outcome="success"} 1`)
}
