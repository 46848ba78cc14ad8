package photos

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// ImageExtensions lists the lowercase file extensions treated as photos.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}

// IsImageFile reports whether name carries one of ImageExtensions.
func IsImageFile(name string) bool {
	return slices.Contains(ImageExtensions, strings.ToLower(filepath.Ext(name)))
}

// Path is a resolved filesystem location with the stat info captured at
// resolution time. Paths come from FilesystemManager.Resolve or FindFiles.
type Path struct {
	absPath string
	isDir   bool
	info    fs.FileInfo
}

// NewPath creates a Path from its components.
// This is primarily for use by FilesystemManager implementations.
func NewPath(absPath string, isDir bool, info fs.FileInfo) *Path {
	return &Path{
		absPath: absPath,
		isDir:   isDir,
		info:    info,
	}
}

// String returns the absolute path.
func (p *Path) String() string {
	return p.absPath
}

func (p *Path) IsDir() bool {
	return p.isDir
}

// ModTime is the modification time captured when the path was resolved.
func (p *Path) ModTime() time.Time {
	if p.info == nil {
		return time.Time{}
	}
	return p.info.ModTime()
}

// IsImage reports whether the path is a regular file with an image extension.
func (p *Path) IsImage() bool {
	return !p.isDir && IsImageFile(p.absPath)
}
