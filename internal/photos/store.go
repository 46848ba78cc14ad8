package photos

import "io"

// RecordStore is the byte-level backend holding one durable record per
// username. Repository implementations layer the record codec on top.
type RecordStore interface {
	// PutRecord replaces the record called name with size bytes read from r.
	// The replacement is atomic: on failure the previous record stays intact.
	PutRecord(name string, r io.Reader, size int64) error

	// GetRecord writes the record called name to w.
	// Returns an error matching ErrNotFound if no such record exists.
	GetRecord(name string, w io.Writer) error

	// DeleteRecord removes the record called name. Deleting a missing
	// record succeeds.
	DeleteRecord(name string) error

	// ListRecords returns the names of all stored records, sorted.
	ListRecords() ([]string, error)

	// ValidateSetup verifies that the backend is reachable and writable.
	ValidateSetup() error
}
