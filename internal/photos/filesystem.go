package photos

// FilesystemManager resolves user-supplied paths and scans directories.
// It abstracts file access so the library can be tested without touching
// the real filesystem.
type FilesystemManager interface {
	// Resolve makes rawPath absolute and stats it. A missing path, or one
	// that is neither a regular file nor a directory, yields ErrFileNotFound.
	Resolve(rawPath string) (*Path, error)

	// FindFiles lists the regular files directly inside dir, sorted by name.
	FindFiles(dir *Path) ([]*Path, error)
}
