package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/xiaot623/gogo/fulfillment/internal/adapter/auth"
	"github.com/xiaot623/gogo/fulfillment/internal/adapter/llm"
	"github.com/xiaot623/gogo/fulfillment/internal/config"
	"github.com/xiaot623/gogo/fulfillment/internal/repository"
	"github.com/xiaot623/gogo/fulfillment/internal/service"
	"github.com/xiaot623/gogo/fulfillment/tests/helpers"
)

// fakeLLMService is an httptest LLM service that records request payloads.
type fakeLLMService struct {
	mu       sync.Mutex
	payloads []map[string]map[string]string
	status   int
	reply    func(fields map[string]string) string
}

func (f *fakeLLMService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var payload map[string]map[string]string
	body, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(body, &payload)

	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()

	if f.status != 0 && f.status != http.StatusOK {
		w.WriteHeader(f.status)
		fmt.Fprint(w, `{"error":"unavailable"}`)
		return
	}
	fmt.Fprint(w, f.reply(payload["custom"]))
}

func newTestHandler(t *testing.T, llmService *fakeLLMService) (*Handler, *repository.SQLiteStore) {
	t.Helper()
	if llmService.reply == nil {
		llmService.reply = func(fields map[string]string) string { return "reply to " + fields["text"] }
	}
	server := httptest.NewServer(llmService)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		LLMServiceURL:      server.URL,
		LLMTimeout:         time.Second,
		LLMSummaryTimeout:  time.Second,
		LLMBulkConcurrency: 2,
	}
	db := helpers.NewTestDocStore(t)
	client := llm.NewClient(cfg.LLMServiceURL, auth.NewStaticTokenProvider("test-token"), cfg.LLMTimeout)
	svc := service.New(db, client, nil, cfg, nil)
	return NewHandler(svc), db
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t, &fakeLLMService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t, &fakeLLMService{})
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/missing/history", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
