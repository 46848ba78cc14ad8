package recordstore

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"sync"

	"photos-go/internal/photos"
)

// MemoryStore keeps records in memory. It is safe for concurrent use and
// is mostly useful for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (m *MemoryStore) PutRecord(name string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return photos.IOFailure("reading record", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[name] = data
	return nil
}

func (m *MemoryStore) GetRecord(name string, w io.Writer) error {
	m.mu.RLock()
	data, ok := m.records[name]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("record %q: %w", name, photos.ErrNotFound)
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return photos.IOFailure("writing record", err)
	}
	return nil
}

func (m *MemoryStore) DeleteRecord(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, name)
	return nil
}

func (m *MemoryStore) ListRecords() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.records))
	for name := range m.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryStore) ValidateSetup() error { return nil }

// Corrupt overwrites a stored record with data, bypassing any codec.
func (m *MemoryStore) Corrupt(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[name] = append([]byte(nil), data...)
}

var _ photos.RecordStore = (*MemoryStore)(nil)
