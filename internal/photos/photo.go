package photos

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Photo is one image file known to a user. Its identity is the file path:
// a user holds at most one Photo per path and every album containing the
// photo references that same instance, so caption and tag edits are
// visible through all of them.
type Photo struct {
	path         string
	caption      string
	lastModified time.Time
	tags         []Tag
}

// NewPhoto creates a photo for a resolved path. The modification time is
// snapshotted here and never re-read.
func NewPhoto(path *Path) (*Photo, error) {
	if path == nil {
		return nil, fmt.Errorf("%w: no path", ErrFileNotFound)
	}
	if path.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path.String())
	}
	if !path.IsImage() {
		return nil, fmt.Errorf("%w: %s is not an image file", ErrInvalidArgument, path.String())
	}
	return &Photo{
		path:         path.String(),
		lastModified: path.ModTime(),
	}, nil
}

// RestorePhoto rebuilds a photo from persisted fields. Duplicate tags are dropped.
func RestorePhoto(path, caption string, lastModified time.Time, tags []Tag) *Photo {
	p := &Photo{path: path, caption: caption, lastModified: lastModified}
	for _, t := range tags {
		_ = p.AddTag(t)
	}
	return p
}

func (p *Photo) Path() string            { return p.path }
func (p *Photo) Caption() string         { return p.caption }
func (p *Photo) LastModified() time.Time { return p.lastModified }

// SetCaption stores the trimmed caption. Rejecting empty captions is up to the caller.
func (p *Photo) SetCaption(text string) {
	p.caption = strings.TrimSpace(text)
}

// Tags returns the tags in insertion order.
func (p *Photo) Tags() []Tag {
	return slices.Clone(p.tags)
}

// AddTag appends tag unless an equal tag is already present.
func (p *Photo) AddTag(tag Tag) error {
	if slices.Contains(p.tags, tag) {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateTag, tag, p.path)
	}
	p.tags = append(p.tags, tag)
	return nil
}

// RemoveTag deletes tag from the photo.
func (p *Photo) RemoveTag(tag Tag) error {
	i := slices.Index(p.tags, tag)
	if i < 0 {
		return fmt.Errorf("%w: %s on %s", ErrTagNotFound, tag, p.path)
	}
	p.tags = slices.Delete(p.tags, i, i+1)
	return nil
}

// HasTag reports whether the photo carries name=value.
func (p *Photo) HasTag(name, value string) bool {
	return slices.ContainsFunc(p.tags, func(t Tag) bool { return t.Matches(name, value) })
}

// SamePhoto reports whether p and other refer to the same file.
func (p *Photo) SamePhoto(other *Photo) bool {
	return p != nil && other != nil && p.path == other.path
}
