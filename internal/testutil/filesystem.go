package testutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"photos-go/internal/photos"
)

// MockFile is a file or directory in the mock filesystem.
type MockFile struct {
	ModTime     time.Time
	IsDirectory bool
}

// MockFilesystemManager is an in-memory filesystem keyed by absolute path.
type MockFilesystemManager struct {
	files map[string]*MockFile
}

func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{files: make(map[string]*MockFile)}
}

// AddFile adds a regular file with the given modification time. Parent
// directories are added as needed.
func (m *MockFilesystemManager) AddFile(path string, modTime time.Time) {
	m.files[path] = &MockFile{ModTime: modTime}
	m.addParents(path)
}

func (m *MockFilesystemManager) AddDirectory(path string) {
	m.files[path] = &MockFile{ModTime: time.Now(), IsDirectory: true}
	m.addParents(path)
}

// Remove deletes path from the mock filesystem.
func (m *MockFilesystemManager) Remove(path string) {
	delete(m.files, path)
}

func (m *MockFilesystemManager) addParents(path string) {
	for dir := filepath.Dir(path); dir != path; path, dir = dir, filepath.Dir(dir) {
		if _, ok := m.files[dir]; ok {
			return
		}
		m.files[dir] = &MockFile{ModTime: time.Now(), IsDirectory: true}
	}
}

func (m *MockFilesystemManager) Resolve(rawPath string) (*photos.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, err
	}

	file, ok := m.files[absPath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", photos.ErrFileNotFound, absPath)
	}
	return photos.NewPath(absPath, file.IsDirectory, newMockFileInfo(absPath, file)), nil
}

func (m *MockFilesystemManager) FindFiles(dir *photos.Path) ([]*photos.Path, error) {
	if !dir.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", photos.ErrInvalidArgument, dir.String())
	}

	var paths []*photos.Path
	for p, file := range m.files {
		if file.IsDirectory || filepath.Dir(p) != dir.String() {
			continue
		}
		paths = append(paths, photos.NewPath(p, false, newMockFileInfo(p, file)))
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].String() < paths[j].String() })
	return paths, nil
}

type mockFileInfo struct {
	name string
	file *MockFile
}

func newMockFileInfo(path string, file *MockFile) *mockFileInfo {
	return &mockFileInfo{name: filepath.Base(path), file: file}
}

func (i *mockFileInfo) Name() string       { return i.name }
func (i *mockFileInfo) Size() int64        { return 0 }
func (i *mockFileInfo) ModTime() time.Time { return i.file.ModTime }
func (i *mockFileInfo) IsDir() bool        { return i.file.IsDirectory }
func (i *mockFileInfo) Sys() any           { return i.file }

func (i *mockFileInfo) Mode() fs.FileMode {
	if i.file.IsDirectory {
		return fs.ModeDir | 0755
	}
	return 0644
}

var _ photos.FilesystemManager = (*MockFilesystemManager)(nil)
