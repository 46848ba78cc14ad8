package testutil

import (
	"testing"

	"photos-go/internal/database"
)

// NewTestSQLiteStore creates an in-memory SQLite record store with the
// schema migrated. It is closed when the test completes.
func NewTestSQLiteStore(t *testing.T) *database.SQLiteStore {
	t.Helper()

	s, err := database.NewSQLiteStore(":memory:", FixedClock(), NewStubIDGenerator())
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
