package recordstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"photos-go/internal/photos"
)

const recordExt = ".dat"

// FileSystemStore keeps one file per record:
//
//	<usersDir>/
//	  <username>.dat
//	<stockPath>          (the stock user's record)
//
// The stock record lives outside usersDir so that it can ship alongside the
// stock photo directory.
type FileSystemStore struct {
	usersDir  string
	stockPath string
}

// NewFileSystemStore creates usersDir and the directory holding stockPath
// if needed.
func NewFileSystemStore(usersDir, stockPath string) (*FileSystemStore, error) {
	if err := os.MkdirAll(usersDir, 0755); err != nil {
		return nil, photos.IOFailure("creating users directory", err)
	}
	if err := os.MkdirAll(filepath.Dir(stockPath), 0755); err != nil {
		return nil, photos.IOFailure("creating stock directory", err)
	}
	return &FileSystemStore{usersDir: usersDir, stockPath: stockPath}, nil
}

func (s *FileSystemStore) pathFor(name string) string {
	if name == photos.StockUsername {
		return s.stockPath
	}
	return filepath.Join(s.usersDir, name+recordExt)
}

// PutRecord writes the record to a temp file beside its destination and
// renames it into place.
func (s *FileSystemStore) PutRecord(name string, r io.Reader, size int64) error {
	return writeFile(s.pathFor(name), r, size)
}

func (s *FileSystemStore) GetRecord(name string, w io.Writer) error {
	f, err := os.Open(s.pathFor(name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("record %q: %w", name, photos.ErrNotFound)
		}
		return photos.IOFailure("opening record", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return photos.IOFailure("reading record", err)
	}
	return nil
}

func (s *FileSystemStore) DeleteRecord(name string) error {
	if err := os.Remove(s.pathFor(name)); err != nil && !os.IsNotExist(err) {
		return photos.IOFailure("removing record", err)
	}
	return nil
}

// ListRecords returns every <name>.dat in usersDir, plus the stock record
// when its file exists.
func (s *FileSystemStore) ListRecords() ([]string, error) {
	entries, err := os.ReadDir(s.usersDir)
	if err != nil {
		return nil, photos.IOFailure("listing users directory", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), recordExt); ok && name != "" {
			names = append(names, name)
		}
	}
	if _, err := os.Stat(s.stockPath); err == nil {
		names = append(names, photos.StockUsername)
	}
	sort.Strings(names)
	return names, nil
}

// ValidateSetup verifies that the users directory exists and accepts writes.
func (s *FileSystemStore) ValidateSetup() error {
	info, err := os.Stat(s.usersDir)
	if err != nil {
		return photos.IOFailure("users directory not accessible", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("users path is not a directory: %s", s.usersDir)
	}

	probe, err := os.CreateTemp(s.usersDir, ".probe-*")
	if err != nil {
		return photos.IOFailure("users directory not writable", err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

// writeFile copies r to destPath through a temp file in the same directory,
// so readers see either the old or the new record.
func writeFile(destPath string, r io.Reader, expectedSize int64) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".tmp-*")
	if err != nil {
		return photos.IOFailure("creating temp file", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return photos.IOFailure("writing record", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return photos.IOFailure("syncing record", err)
	}
	if err := tmpFile.Close(); err != nil {
		return photos.IOFailure("closing temp file", err)
	}

	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return photos.IOFailure("renaming temp file", err)
	}

	success = true
	return nil
}

var _ photos.RecordStore = (*FileSystemStore)(nil)
