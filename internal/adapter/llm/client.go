package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xiaot623/gogo/fulfillment/internal/adapter/auth"
	"github.com/xiaot623/gogo/fulfillment/internal/domain"
)

// DefaultTimeout applies when Send is called without a timeout.
const DefaultTimeout = 5 * time.Second

// Client calls the LLM service with a freshly minted bearer token per request.
type Client struct {
	serviceURL string
	tokens     auth.TokenProvider
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a new LLM service client. The service URL is also the
// token audience.
func NewClient(serviceURL string, tokens auth.TokenProvider, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		serviceURL: serviceURL,
		tokens:     tokens,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Response is a successful LLM service response.
type Response struct {
	StatusCode int
	Body       []byte
}

// Text returns the response body as text.
func (r *Response) Text() string {
	return string(r.Body)
}

// RequestError reports a non-2xx response. Body holds the decoded JSON body,
// or the raw text if it was not JSON.
type RequestError struct {
	StatusCode int
	Body       any
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("LLM service error [%d]: %v", e.StatusCode, e.Body)
}

// Headers builds the request headers, minting a new token on every call.
func (c *Client) Headers(ctx context.Context) (http.Header, error) {
	token, err := c.tokens.Token(ctx, c.serviceURL)
	if err != nil {
		return nil, err
	}
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("Authorization", "Bearer "+token)
	return h, nil
}

// Send posts payload to the LLM service.
func (c *Client) Send(ctx context.Context, payload domain.Payload, timeout time.Duration) (*Response, error) {
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	headers, err := c.Headers(ctx)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header = headers

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: decodeErrorBody(respBody)}
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

func decodeErrorBody(body []byte) any {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err == nil {
		return decoded
	}
	return string(body)
}
