package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store on a single SQLite table. It mirrors the
// Firestore data model closely enough for local development and tests.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite document store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			path TEXT PRIMARY KEY,
			parent TEXT NOT NULL,
			collection TEXT NOT NULL,
			doc_id TEXT NOT NULL,
			data TEXT NOT NULL,
			create_time DATETIME NOT NULL,
			update_time DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(parent, collection, create_time)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Exists reports whether a document is stored at path.
func (s *SQLiteStore) Exists(ctx context.Context, path string) (bool, error) {
	if _, _, _, err := splitDocPath(path); err != nil {
		return false, err
	}
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM documents WHERE path = ?`, path).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check document %s: %w", path, err)
	}
	return true, nil
}

// Get retrieves a document by path.
func (s *SQLiteStore) Get(ctx context.Context, path string) (*Document, error) {
	if _, _, _, err := splitDocPath(path); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT path, doc_id, data, create_time, update_time FROM documents WHERE path = ?`, path)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", path, err)
	}
	return doc, nil
}

// Stream iterates the documents of a sub-collection in creation order.
func (s *SQLiteStore) Stream(ctx context.Context, docPath, collection string) DocumentIterator {
	if _, _, _, err := splitDocPath(docPath); err != nil {
		return &errIterator{err: err}
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, doc_id, data, create_time, update_time FROM documents
		WHERE parent = ? AND collection = ? ORDER BY create_time ASC, rowid ASC`,
		docPath, collection)
	if err != nil {
		return &errIterator{err: fmt.Errorf("failed to stream %s/%s: %w", docPath, collection, err)}
	}
	return &sqliteIterator{rows: rows}
}

// SetFields merges fields into a document, creating it if needed.
func (s *SQLiteStore) SetFields(ctx context.Context, path string, fields map[string]any) error {
	parent, collection, id, err := splitDocPath(path)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	data := map[string]any{}
	var raw string
	err = tx.QueryRowContext(ctx, `SELECT data FROM documents WHERE path = ?`, path).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return fmt.Errorf("failed to read document %s: %w", path, err)
	default:
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return fmt.Errorf("failed to decode document %s: %w", path, err)
		}
	}
	for k, v := range fields {
		data[k] = v
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", path, err)
	}
	now := s.now()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (path, parent, collection, doc_id, data, create_time, update_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET data = excluded.data, update_time = excluded.update_time`,
		path, parent, collection, id, string(encoded), now, now)
	if err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return tx.Commit()
}

// Add creates a document with a generated id.
func (s *SQLiteStore) Add(ctx context.Context, parentPath, collection string, fields map[string]any) (string, error) {
	if parentPath != "" {
		if _, _, _, err := splitDocPath(parentPath); err != nil {
			return "", err
		}
	}
	if collection == "" || strings.Contains(collection, "/") {
		return "", fmt.Errorf("invalid collection %q", collection)
	}

	encoded, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	path := DocPath(collection, id)
	if parentPath != "" {
		path = DocPath(parentPath, collection, id)
	}
	now := s.now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (path, parent, collection, doc_id, data, create_time, update_time) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		path, parentPath, collection, id, string(encoded), now, now)
	if err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*Document, error) {
	var doc Document
	var raw string
	if err := row.Scan(&doc.Path, &doc.ID, &raw, &doc.CreateTime, &doc.UpdateTime); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(raw), &doc.Data); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", doc.Path, err)
	}
	if doc.Data == nil {
		doc.Data = map[string]any{}
	}
	return &doc, nil
}

type sqliteIterator struct {
	rows *sql.Rows
	done bool
}

func (it *sqliteIterator) Next() (*Document, error) {
	if it.done {
		return nil, Done
	}
	if !it.rows.Next() {
		err := it.rows.Err()
		it.Stop()
		if err != nil {
			return nil, err
		}
		return nil, Done
	}
	doc, err := scanDocument(it.rows)
	if err != nil {
		it.Stop()
		return nil, err
	}
	return doc, nil
}

func (it *sqliteIterator) Stop() {
	if !it.done {
		it.done = true
		it.rows.Close()
	}
}
