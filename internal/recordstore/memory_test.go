package recordstore

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"photos-go/internal/photos"
)

func TestMemoryStore_PutAndGetRecord(t *testing.T) {
	store := NewMemoryStore()

	tests := []struct {
		name    string
		content string
	}{
		{name: "alice", content: "hello world"},
		{name: "empty", content: ""},
		{name: "large", content: strings.Repeat("x", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.PutRecord(tt.name, strings.NewReader(tt.content), int64(len(tt.content))); err != nil {
				t.Fatalf("PutRecord() error = %v", err)
			}

			var buf bytes.Buffer
			if err := store.GetRecord(tt.name, &buf); err != nil {
				t.Fatalf("GetRecord() error = %v", err)
			}
			if got := buf.String(); got != tt.content {
				t.Errorf("GetRecord() = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestMemoryStore_SizeMismatch(t *testing.T) {
	store := NewMemoryStore()

	if err := store.PutRecord("alice", strings.NewReader("abc"), 10); err == nil {
		t.Fatal("PutRecord() expected size mismatch error")
	}
	var buf bytes.Buffer
	if err := store.GetRecord("alice", &buf); !errors.Is(err, photos.ErrNotFound) {
		t.Errorf("GetRecord() error = %v, want ErrNotFound after rejected write", err)
	}
}

func TestMemoryStore_DeleteAndList(t *testing.T) {
	store := NewMemoryStore()
	for _, name := range []string{"bob", "alice", "carol"} {
		if err := store.PutRecord(name, strings.NewReader(name), int64(len(name))); err != nil {
			t.Fatalf("PutRecord(%q) error = %v", name, err)
		}
	}

	if err := store.DeleteRecord("bob"); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}
	if err := store.DeleteRecord("nobody"); err != nil {
		t.Errorf("DeleteRecord() of missing record error = %v", err)
	}

	names, err := store.ListRecords()
	if err != nil {
		t.Fatalf("ListRecords() error = %v", err)
	}
	if got := strings.Join(names, ","); got != "alice,carol" {
		t.Errorf("ListRecords() = %q, want %q", got, "alice,carol")
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a' + i))
			store.PutRecord(name, strings.NewReader(name), 1)
			var buf bytes.Buffer
			store.GetRecord(name, &buf)
			store.ListRecords()
		}(i)
	}
	wg.Wait()

	names, _ := store.ListRecords()
	if len(names) != 20 {
		t.Errorf("ListRecords() returned %d names, want 20", len(names))
	}
}
