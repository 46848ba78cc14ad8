package testutil

import (
	"photos-go/internal/photos"
	"photos-go/internal/recordstore"
	"photos-go/internal/repository"
)

// NewTestRepository returns a plaintext repository over a fresh memory
// store. The store is returned so tests can corrupt records directly.
func NewTestRepository() (*repository.Repository, *recordstore.MemoryStore) {
	store := recordstore.NewMemoryStore()
	return repository.New(store, repository.NewCodec(), photos.NewNopLogger()), store
}

// NewTestService wires a LibraryService over an in-memory repository and
// a mock filesystem with a fixed clock.
func NewTestService() (*photos.LibraryService, *MockFilesystemManager, *recordstore.MemoryStore) {
	repo, store := NewTestRepository()
	fsmgr := NewMockFilesystemManager()
	svc := photos.NewLibraryService(repo, fsmgr, photos.NewNopLogger(), FixedClock(), NewStubIDGenerator())
	return svc, fsmgr, store
}
