package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements Store on Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// Ensure FirestoreStore implements Store interface.
var _ Store = (*FirestoreStore)(nil)

// NewFirestoreStore creates a Firestore client. An empty projectID detects
// the project from the environment. FIRESTORE_EMULATOR_HOST is honored by
// the client library.
func NewFirestoreStore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

// Close closes the Firestore client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) doc(path string) (*firestore.DocumentRef, error) {
	if _, _, _, err := splitDocPath(path); err != nil {
		return nil, err
	}
	ref := s.client.Doc(path)
	if ref == nil {
		return nil, fmt.Errorf("invalid document path %q", path)
	}
	return ref, nil
}

// Exists reports whether the document exists.
func (s *FirestoreStore) Exists(ctx context.Context, path string) (bool, error) {
	ref, err := s.doc(path)
	if err != nil {
		return false, err
	}
	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check document %s: %w", path, err)
	}
	return snap.Exists(), nil
}

// Get retrieves a document, returning nil if it does not exist.
func (s *FirestoreStore) Get(ctx context.Context, path string) (*Document, error) {
	ref, err := s.doc(path)
	if err != nil {
		return nil, err
	}
	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", path, err)
	}
	if !snap.Exists() {
		return nil, nil
	}
	return fromSnapshot(snap, path), nil
}

// Stream iterates a sub-collection in the store's default order.
func (s *FirestoreStore) Stream(ctx context.Context, docPath, collection string) DocumentIterator {
	ref, err := s.doc(docPath)
	if err != nil {
		return &errIterator{err: err}
	}
	return &firestoreIterator{
		it:     ref.Collection(collection).Documents(ctx),
		prefix: DocPath(docPath, collection),
	}
}

// SetFields merges fields into the document.
func (s *FirestoreStore) SetFields(ctx context.Context, path string, fields map[string]any) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	if _, err := ref.Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return nil
}

// Add creates a document with a generated id.
func (s *FirestoreStore) Add(ctx context.Context, parentPath, collection string, fields map[string]any) (string, error) {
	var coll *firestore.CollectionRef
	if parentPath == "" {
		coll = s.client.Collection(collection)
	} else {
		ref, err := s.doc(parentPath)
		if err != nil {
			return "", err
		}
		coll = ref.Collection(collection)
	}
	if coll == nil {
		return "", fmt.Errorf("invalid collection %q", collection)
	}
	ref, _, err := coll.Add(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}
	return ref.ID, nil
}

func fromSnapshot(snap *firestore.DocumentSnapshot, path string) *Document {
	data := snap.Data()
	if data == nil {
		data = map[string]any{}
	}
	return &Document{
		ID:         snap.Ref.ID,
		Path:       path,
		Data:       data,
		CreateTime: snap.CreateTime,
		UpdateTime: snap.UpdateTime,
	}
}

type firestoreIterator struct {
	it     *firestore.DocumentIterator
	prefix string
}

func (f *firestoreIterator) Next() (*Document, error) {
	snap, err := f.it.Next()
	if err != nil {
		return nil, err
	}
	return fromSnapshot(snap, DocPath(f.prefix, snap.Ref.ID)), nil
}

func (f *firestoreIterator) Stop() {
	f.it.Stop()
}
