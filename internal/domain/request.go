package domain

import "encoding/json"

// PayloadKey is the top-level key the LLM service expects.
const PayloadKey = "custom"

// Payload is the JSON body sent to the LLM service: {"custom": {...}}.
type Payload map[string]map[string]string

// NewPayload wraps fields under PayloadKey.
func NewPayload(fields map[string]string) Payload {
	return Payload{PayloadKey: fields}
}

// Fields returns the wrapped fields.
func (p Payload) Fields() map[string]string {
	return p[PayloadKey]
}

// TagRequest carries the inputs of a callback tagging call. Optional fields
// are sent as empty strings, never omitted.
type TagRequest struct {
	Summary         string `json:"summary"`
	CustomerComment string `json:"customer_comment,omitempty"`
	Service         string `json:"service,omitempty"`
	Telesales       string `json:"telesales,omitempty"`
	Techniek        string `json:"techniek,omitempty"`
	Activatie       string `json:"activatie,omitempty"`
	Prompt          string `json:"prompt"`
}

// Payload builds the LLM payload for the tag request.
func (r TagRequest) Payload() Payload {
	return NewPayload(map[string]string{
		"text":             r.Summary,
		"customer_comment": r.CustomerComment,
		"service":          r.Service,
		"telesales":        r.Telesales,
		"techniek":         r.Techniek,
		"activatie":        r.Activatie,
		"prompt":           r.Prompt,
	})
}

// Result is the outcome of one LLM request. OK is false for the no-result
// outcome; Text is meaningful only when OK is true.
type Result struct {
	Text string
	OK   bool
}

// Value returns the text and whether there was a result.
func (r Result) Value() (string, bool) {
	return r.Text, r.OK
}

// MarshalJSON encodes the no-result outcome as null.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.OK {
		return []byte("null"), nil
	}
	return json.Marshal(r.Text)
}

// LocationRequest is the body of POST /v1/location.
type LocationRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// SummaryRequest is the body of POST /v1/summaries.
type SummaryRequest struct {
	SessionID    string `json:"session_id"`
	Conversation string `json:"conversation"`
	Prompt       string `json:"prompt,omitempty"`
}

// BulkSummaryRequest is the body of POST /v1/summaries/bulk. SessionID
// attributes failures; results are keyed by the conversation keys.
type BulkSummaryRequest struct {
	SessionID     string            `json:"session_id"`
	Conversations map[string]string `json:"conversations"`
	Prompt        string            `json:"prompt,omitempty"`
}

// TagCallbackRequest is the body of POST /v1/callbacks/tag.
type TagCallbackRequest struct {
	SessionID string `json:"session_id"`
	TagRequest
}

// SessionSummaryRequest is the optional body of POST /v1/sessions/:session_id/summary.
type SessionSummaryRequest struct {
	Prompt string `json:"prompt,omitempty"`
}
