package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/xiaot623/gogo/fulfillment/internal/adapter/llm"
	"github.com/xiaot623/gogo/fulfillment/internal/config"
	"github.com/xiaot623/gogo/fulfillment/internal/domain"
	"github.com/xiaot623/gogo/fulfillment/internal/repository"
)

// fakeStore is an in-memory repository.Reader that counts stream calls.
type fakeStore struct {
	docs        map[string]*repository.Document
	collections map[string][]*repository.Document
	getErr      error
	existsErr   error
	streamCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:        map[string]*repository.Document{},
		collections: map[string][]*repository.Document{},
	}
}

func (f *fakeStore) Exists(ctx context.Context, path string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.docs[path]
	return ok, nil
}

func (f *fakeStore) Get(ctx context.Context, path string) (*repository.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.docs[path], nil
}

func (f *fakeStore) Stream(ctx context.Context, docPath, collection string) repository.DocumentIterator {
	f.streamCalls++
	return &sliceIterator{docs: f.collections[repository.DocPath(docPath, collection)]}
}

func (f *fakeStore) addMessage(sessionID string, createTime time.Time, fields map[string]any) {
	parent := repository.DocPath(domain.ChatHistoryCollection, sessionID)
	key := repository.DocPath(parent, domain.MessagesCollection)
	f.collections[key] = append(f.collections[key], &repository.Document{Data: fields, CreateTime: createTime})
}

type sliceIterator struct {
	docs []*repository.Document
	pos  int
}

func (it *sliceIterator) Next() (*repository.Document, error) {
	if it.pos >= len(it.docs) {
		return nil, repository.Done
	}
	doc := it.docs[it.pos]
	it.pos++
	return doc, nil
}

func (it *sliceIterator) Stop() {}

// fakeLLM records payloads and answers with respond.
type fakeLLM struct {
	mu       sync.Mutex
	payloads []domain.Payload
	timeouts []time.Duration
	respond  func(domain.Payload) (*llm.Response, error)
}

func (f *fakeLLM) Send(ctx context.Context, payload domain.Payload, timeout time.Duration) (*llm.Response, error) {
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.timeouts = append(f.timeouts, timeout)
	f.mu.Unlock()
	return f.respond(payload)
}

func succeedWith(text string) func(domain.Payload) (*llm.Response, error) {
	return func(domain.Payload) (*llm.Response, error) {
		return &llm.Response{StatusCode: 200, Body: []byte(text)}, nil
	}
}

func alwaysFail(domain.Payload) (*llm.Response, error) {
	return nil, &llm.RequestError{StatusCode: 500, Body: map[string]any{"error": "boom"}}
}

type report struct {
	err  error
	user string
}

type recordingReporter struct {
	mu      sync.Mutex
	reports []report
}

func (r *recordingReporter) Report(ctx context.Context, err error, user string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report{err: err, user: user})
}

func (r *recordingReporter) Close() error { return nil }

type staticPrompts map[string]string

func (p staticPrompts) Prompt(ctx context.Context, promptID string) string { return p[promptID] }

func testConfig() *config.Config {
	return &config.Config{
		LLMTimeout:         5 * time.Second,
		LLMSummaryTimeout:  30 * time.Second,
		LLMBulkConcurrency: 1,
	}
}

func newTestService(store repository.Reader, client llm.LLMClient, reporter *recordingReporter) *Service {
	return New(store, client, reporter, testConfig(), nil)
}

var errUnavailable = errors.New("store unavailable")
