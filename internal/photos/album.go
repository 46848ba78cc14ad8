package photos

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Album is a named, ordered list of photo references owned by one user.
// It never holds two photos with the same path.
type Album struct {
	name   string
	photos []*Photo
	owner  *User
}

// NewAlbum creates an empty, unowned album. User.AddAlbum takes ownership.
func NewAlbum(name string) (*Album, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: album name is empty", ErrInvalidArgument)
	}
	return &Album{name: name}, nil
}

func (a *Album) Name() string { return a.name }

// Owner returns the user holding this album, or nil.
func (a *Album) Owner() *User { return a.owner }

// Len returns the number of photos.
func (a *Album) Len() int { return len(a.photos) }

// Photos returns the photos in display order. The slice is a copy; use
// AddPhoto and RemovePhoto for structural changes.
func (a *Album) Photos() []*Photo {
	return slices.Clone(a.photos)
}

func (a *Album) indexOf(path string) int {
	return slices.IndexFunc(a.photos, func(p *Photo) bool { return p.path == path })
}

// Contains reports whether a photo with the same path is in the album.
func (a *Album) Contains(photo *Photo) bool {
	return photo != nil && a.indexOf(photo.path) >= 0
}

// FindPhoto returns the photo stored under path, or nil.
func (a *Album) FindPhoto(path string) *Photo {
	if i := a.indexOf(path); i >= 0 {
		return a.photos[i]
	}
	return nil
}

// AddPhoto appends photo. In an album owned by a user the user's instance
// for the path is appended, so one path never maps to two photos.
func (a *Album) AddPhoto(photo *Photo) error {
	if photo == nil {
		return fmt.Errorf("%w: nil photo", ErrInvalidArgument)
	}
	if a.owner != nil {
		photo = a.owner.AdoptPhoto(photo)
	}
	if a.Contains(photo) {
		return fmt.Errorf("%w: %s already in album %q", ErrDuplicatePhoto, photo.path, a.name)
	}
	a.photos = append(a.photos, photo)
	return nil
}

// RemovePhoto removes the photo with the same path. Removing an absent
// photo is a no-op.
func (a *Album) RemovePhoto(photo *Photo) {
	if photo == nil {
		return
	}
	if i := a.indexOf(photo.path); i >= 0 {
		a.photos = slices.Delete(a.photos, i, i+1)
	}
}

// Rename changes the album name. Uniqueness within the owner is checked by
// User.RenameAlbum; Rename itself only rejects empty names.
func (a *Album) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: album name is empty", ErrInvalidArgument)
	}
	a.name = name
	return nil
}

// DateRange returns the earliest and latest photo modification times.
// ok is false for an empty album.
func (a *Album) DateRange() (earliest, latest time.Time, ok bool) {
	for i, p := range a.photos {
		if i == 0 || p.lastModified.Before(earliest) {
			earliest = p.lastModified
		}
		if i == 0 || p.lastModified.After(latest) {
			latest = p.lastModified
		}
	}
	return earliest, latest, len(a.photos) > 0
}
