package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"photos-go/internal/photos"
)

// OSFilesystemManager resolves and scans paths on the real filesystem.
type OSFilesystemManager struct{}

func NewOSFilesystemManager() *OSFilesystemManager {
	return &OSFilesystemManager{}
}

// Resolve makes rawPath absolute and stats it. Anything other than a
// regular file or a directory is reported as ErrFileNotFound.
func (m *OSFilesystemManager) Resolve(rawPath string) (*photos.Path, error) {
	if rawPath == "" {
		return nil, fmt.Errorf("%w: empty path", photos.ErrFileNotFound)
	}
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", photos.ErrFileNotFound, absPath)
		}
		return nil, photos.IOFailure("stat "+absPath, err)
	}

	if !info.Mode().IsRegular() && !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a regular file or directory", photos.ErrFileNotFound, absPath)
	}
	return photos.NewPath(absPath, info.IsDir(), info), nil
}

// FindFiles lists the regular files directly inside dir, sorted by path.
// Files matched by the directory's ignore file are skipped.
func (m *OSFilesystemManager) FindFiles(dir *photos.Path) ([]*photos.Path, error) {
	if !dir.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", photos.ErrInvalidArgument, dir.String())
	}

	ignore, err := LoadIgnoreMatcher(dir.String())
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir.String())
	if err != nil {
		return nil, photos.IOFailure("reading directory", err)
	}

	var paths []*photos.Path
	for _, entry := range entries {
		if !entry.Type().IsRegular() || ignore.Match(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, photos.IOFailure("stat "+entry.Name(), err)
		}
		paths = append(paths, photos.NewPath(filepath.Join(dir.String(), entry.Name()), false, info))
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].String() < paths[j].String() })
	return paths, nil
}

var _ photos.FilesystemManager = (*OSFilesystemManager)(nil)
