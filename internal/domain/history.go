package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// CreateTimeField is the record key carrying the store-assigned creation time.
const CreateTimeField = "create_time"

// Well-known free-form message fields written by the chat frontend.
const (
	FieldUserMessage = "user_msg"
	FieldButtonLabel = "button_label"
	FieldBotResponse = "bot_response"
)

// ErrHistoryNotFound is matched by every HistoryNotFoundError.
var ErrHistoryNotFound = errors.New("chat history not found")

// HistoryNotFoundError reports a session without a chat history document.
type HistoryNotFoundError struct {
	SessionID string
}

func (e *HistoryNotFoundError) Error() string {
	return fmt.Sprintf("chat history missing for session %q", e.SessionID)
}

// Is lets errors.Is match ErrHistoryNotFound.
func (e *HistoryNotFoundError) Is(target error) bool {
	return target == ErrHistoryNotFound
}

// Record is a single chat message. Fields are free-form; CreateTimeField is
// always set from the store and never from the record's own data.
type Record map[string]any

// NewRecord copies fields and stamps the store creation time.
func NewRecord(fields map[string]any, createTime time.Time) Record {
	r := make(Record, len(fields)+1)
	for k, v := range fields {
		r[k] = v
	}
	r[CreateTimeField] = createTime
	return r
}

// CreateTime returns the store-assigned creation time, or the zero time.
func (r Record) CreateTime() time.Time {
	if t, ok := r[CreateTimeField].(time.Time); ok {
		return t
	}
	return time.Time{}
}

// String returns the field as a string, or "" if absent or not a string.
func (r Record) String(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

// History is the chronologically ordered list of records of one session.
type History []Record

// SortByCreateTime orders the history oldest first, keeping store order for ties.
func (h History) SortByCreateTime() {
	slices.SortStableFunc(h, func(a, b Record) int {
		return a.CreateTime().Compare(b.CreateTime())
	})
}

// UserTranscript joins what the user said or clicked, one line per record.
// Bot responses are left out.
func (h History) UserTranscript() string {
	sorted := slices.Clone(h)
	sorted.SortByCreateTime()

	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		if msg := r.String(FieldUserMessage); msg != "" {
			lines = append(lines, msg)
		} else if label := r.String(FieldButtonLabel); label != "" {
			lines = append(lines, label)
		}
	}
	return strings.Join(lines, "\n")
}
