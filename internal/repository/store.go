// Package repository provides document store gateways addressed by
// collection/document/sub-collection paths.
package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/iterator"
)

// Done is returned by DocumentIterator.Next when no documents remain.
var Done = iterator.Done

// Document is a stored document with its store-assigned timestamps.
type Document struct {
	ID         string
	Path       string
	Data       map[string]any
	CreateTime time.Time
	UpdateTime time.Time
}

// DocumentIterator yields documents lazily. Next returns Done after the last
// document. Stop must be called when the caller is finished.
type DocumentIterator interface {
	Next() (*Document, error)
	Stop()
}

// Reader is the read-only surface used by the request path.
type Reader interface {
	// Exists reports whether the document at path exists.
	Exists(ctx context.Context, path string) (bool, error)
	// Get returns the document at path, or nil if it does not exist.
	Get(ctx context.Context, path string) (*Document, error)
	// Stream iterates the documents of a sub-collection of docPath.
	Stream(ctx context.Context, docPath, collection string) DocumentIterator
}

// Writer is used for seeding and administration only.
type Writer interface {
	// SetFields merges fields into the document at path, creating it if needed.
	SetFields(ctx context.Context, path string, fields map[string]any) error
	// Add creates a document with a generated id in a sub-collection of parentPath.
	// An empty parentPath adds to a top-level collection.
	Add(ctx context.Context, parentPath, collection string, fields map[string]any) (string, error)
}

// Store defines the interface for document persistence.
type Store interface {
	Reader
	Writer

	// Lifecycle
	Close() error
}

// DocPath joins collection and document ids into a document path.
func DocPath(segments ...string) string {
	return strings.Join(segments, "/")
}

// splitDocPath validates a document path and returns its parent document
// path, collection and document id.
func splitDocPath(path string) (parent, collection, id string, err error) {
	parts := strings.Split(path, "/")
	if len(parts) < 2 || len(parts)%2 != 0 {
		return "", "", "", fmt.Errorf("invalid document path %q", path)
	}
	for _, p := range parts {
		if p == "" {
			return "", "", "", fmt.Errorf("invalid document path %q", path)
		}
	}
	n := len(parts)
	return strings.Join(parts[:n-2], "/"), parts[n-2], parts[n-1], nil
}

// errIterator is returned when a stream cannot start.
type errIterator struct {
	err error
}

func (it *errIterator) Next() (*Document, error) { return nil, it.err }
func (it *errIterator) Stop()                    {}
