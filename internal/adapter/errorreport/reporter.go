// Package errorreport forwards request failures to a monitoring sink.
package errorreport

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/errorreporting"
)

// Reporter is a fire-and-forget error sink. user identifies the chat session
// the failure belongs to.
type Reporter interface {
	Report(ctx context.Context, err error, user string)
	Close() error
}

// Nop is the reporter used when reporting is disabled.
type Nop struct{}

// Ensure Nop implements Reporter interface.
var _ Reporter = Nop{}

func (Nop) Report(context.Context, error, string) {}
func (Nop) Close() error                           { return nil }

type entryClient interface {
	Report(e errorreporting.Entry)
	Close() error
}

// CloudReporter sends entries to Google Cloud Error Reporting.
type CloudReporter struct {
	client entryClient
}

// Ensure CloudReporter implements Reporter interface.
var _ Reporter = (*CloudReporter)(nil)

// NewCloudReporter creates an Error Reporting client for serviceName.
func NewCloudReporter(ctx context.Context, projectID, serviceName, serviceVersion string) (*CloudReporter, error) {
	client, err := errorreporting.NewClient(ctx, projectID, errorreporting.Config{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		OnError: func(err error) {
			log.Printf("WARN: error reporting failed: %v", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create error reporting client: %w", err)
	}
	return &CloudReporter{client: client}, nil
}

// Report queues err for delivery. It never blocks on the network.
func (r *CloudReporter) Report(_ context.Context, err error, user string) {
	if err == nil {
		return
	}
	r.client.Report(errorreporting.Entry{Error: err, User: user})
}

// Close flushes pending entries and closes the client.
func (r *CloudReporter) Close() error {
	return r.client.Close()
}

// New returns a CloudReporter when serviceName is set and Nop otherwise.
func New(ctx context.Context, projectID, serviceName, serviceVersion string) (Reporter, error) {
	if serviceName == "" {
		return Nop{}, nil
	}
	r, err := NewCloudReporter(ctx, projectID, serviceName, serviceVersion)
	if err != nil {
		return nil, err
	}
	return r, nil
}
