package database

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"photos-go/internal/photos"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDs struct{ n int }

func (g *seqIDs) New() string {
	g.n++
	return "rev-" + string(rune('0'+g.n))
}

// newTestStore creates an in-memory store with the schema applied.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(":memory:", fixedClock{time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}, &seqIDs{})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func put(t *testing.T, s *SQLiteStore, name, data string) {
	t.Helper()
	if err := s.PutRecord(name, strings.NewReader(data), int64(len(data))); err != nil {
		t.Fatalf("PutRecord(%q) error = %v", name, err)
	}
}

func TestSQLiteStore_PutAndGetRecord(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name    string
		content string
	}{
		{name: "alice", content: "hello world"},
		{name: "empty", content: ""},
		{name: "large", content: strings.Repeat("x", 100000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			put(t, s, tt.name, tt.content)

			var buf bytes.Buffer
			if err := s.GetRecord(tt.name, &buf); err != nil {
				t.Fatalf("GetRecord() error = %v", err)
			}
			if buf.String() != tt.content {
				t.Errorf("GetRecord() returned %d bytes, want %d", buf.Len(), len(tt.content))
			}
		})
	}
}

func TestSQLiteStore_PutRecord_Overwrites(t *testing.T) {
	s := newTestStore(t)

	put(t, s, "alice", "version 1")
	first, err := s.Revision("alice")
	if err != nil {
		t.Fatalf("Revision() error = %v", err)
	}
	put(t, s, "alice", "version 2")
	second, err := s.Revision("alice")
	if err != nil {
		t.Fatalf("Revision() error = %v", err)
	}

	var buf bytes.Buffer
	if err := s.GetRecord("alice", &buf); err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if buf.String() != "version 2" {
		t.Errorf("GetRecord() = %q, want %q", buf.String(), "version 2")
	}
	if first == second {
		t.Errorf("revision unchanged after overwrite: %q", first)
	}
}

func TestSQLiteStore_PutRecord_SizeMismatch(t *testing.T) {
	s := newTestStore(t)
	put(t, s, "alice", "original")

	if err := s.PutRecord("alice", strings.NewReader("short"), 99); err == nil {
		t.Fatal("PutRecord() expected size mismatch error")
	}

	var buf bytes.Buffer
	if err := s.GetRecord("alice", &buf); err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if buf.String() != "original" {
		t.Errorf("record = %q after failed write, want %q", buf.String(), "original")
	}
}

func TestSQLiteStore_GetRecord_NotFound(t *testing.T) {
	s := newTestStore(t)

	var buf bytes.Buffer
	err := s.GetRecord("nobody", &buf)
	if !errors.Is(err, photos.ErrNotFound) {
		t.Errorf("GetRecord() error = %v, want ErrNotFound", err)
	}
	if _, err := s.Revision("nobody"); !errors.Is(err, photos.ErrNotFound) {
		t.Errorf("Revision() error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_DeleteAndList(t *testing.T) {
	s := newTestStore(t)
	put(t, s, "carol", "c")
	put(t, s, "alice", "a")
	put(t, s, "bob", "b")

	if err := s.DeleteRecord("bob"); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}
	if err := s.DeleteRecord("bob"); err != nil {
		t.Errorf("second DeleteRecord() error = %v, want nil", err)
	}

	names, err := s.ListRecords()
	if err != nil {
		t.Fatalf("ListRecords() error = %v", err)
	}
	want := []string{"alice", "carol"}
	if len(names) != len(want) {
		t.Fatalf("ListRecords() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ListRecords()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSQLiteStore_FileDatabasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photos.db")

	s, err := NewSQLiteStore(path, nil, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	put(t, s, "alice", "persisted")
	if err := s.ValidateSetup(); err != nil {
		t.Errorf("ValidateSetup() error = %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(path, nil, nil)
	if err != nil {
		t.Fatalf("reopen NewSQLiteStore() error = %v", err)
	}
	defer reopened.Close()

	var buf bytes.Buffer
	if err := reopened.GetRecord("alice", &buf); err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if buf.String() != "persisted" {
		t.Errorf("GetRecord() = %q, want %q", buf.String(), "persisted")
	}
}
