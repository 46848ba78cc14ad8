package fs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"photos-go/internal/photos"
)

// IgnoreFileName names the per-directory file listing glob patterns of
// files FindFiles should skip, one per line. Blank lines and lines
// starting with '#' are ignored. Patterns match base names.
const IgnoreFileName = ".photosignore"

// IgnoreMatcher reports whether a file name matches any ignore pattern.
type IgnoreMatcher struct {
	patterns []string
}

func NewIgnoreMatcher(raw []string) *IgnoreMatcher {
	m := &IgnoreMatcher{patterns: []string{IgnoreFileName}}
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.patterns = append(m.patterns, line)
	}
	return m
}

// Match reports whether name should be skipped. Malformed patterns never
// match.
func (m *IgnoreMatcher) Match(name string) bool {
	base := filepath.Base(name)
	for _, p := range m.patterns {
		if ok, err := filepath.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}

// LoadIgnoreMatcher reads dir's ignore file. A missing file yields a
// matcher that only hides the ignore file itself.
func LoadIgnoreMatcher(dir string) (*IgnoreMatcher, error) {
	f, err := os.Open(filepath.Join(dir, IgnoreFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return NewIgnoreMatcher(nil), nil
		}
		return nil, photos.IOFailure("opening ignore file", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, photos.IOFailure("reading ignore file", err)
	}
	return NewIgnoreMatcher(lines), nil
}
