package repository

import (
	"context"
	"fmt"
)

const (
	// DriverFirestore selects Cloud Firestore.
	DriverFirestore = "firestore"
	// DriverSQLite selects the local SQLite document store.
	DriverSQLite = "sqlite"
)

// Open creates a Store for the given driver.
func Open(ctx context.Context, driver, dsn, projectID string) (Store, error) {
	switch driver {
	case DriverFirestore, "":
		s, err := NewFirestoreStore(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverSQLite:
		s, err := NewSQLiteStore(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown document store driver %q", driver)
	}
}
