package photos

import (
	"fmt"
	"slices"
	"strings"
)

// Reserved usernames.
const (
	AdminUsername = "admin"
	StockUsername = "stock"
	StockAlbum    = "stock"
)

// User owns a list of albums and the arena of photos those albums
// reference. The arena holds exactly one *Photo per path; albums point
// into it, which is what makes a copied photo shared between albums.
type User struct {
	username string
	albums   []*Album
	photos   map[string]*Photo
}

// NewUser creates a user with no albums.
func NewUser(username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is empty", ErrInvalidArgument)
	}
	return &User{username: username, photos: make(map[string]*Photo)}, nil
}

func (u *User) Username() string { return u.username }

// Albums returns the albums in creation order.
func (u *User) Albums() []*Album {
	return slices.Clone(u.albums)
}

// FindAlbum returns the first album named exactly name, or nil.
func (u *User) FindAlbum(name string) *Album {
	for _, a := range u.albums {
		if a.name == name {
			return a
		}
	}
	return nil
}

// CreateAlbum creates and adds an empty album.
func (u *User) CreateAlbum(name string) (*Album, error) {
	album, err := NewAlbum(name)
	if err != nil {
		return nil, err
	}
	if err := u.AddAlbum(album); err != nil {
		return nil, err
	}
	return album, nil
}

// AddAlbum takes ownership of album. Names are compared case-sensitively.
// Photos already in the album are swapped for the user's existing
// instances where the path is already known.
func (u *User) AddAlbum(album *Album) error {
	if album == nil {
		return fmt.Errorf("%w: nil album", ErrInvalidArgument)
	}
	if album.owner != nil && album.owner != u {
		return fmt.Errorf("%w: album %q belongs to %s", ErrAlbumNotOwned, album.name, album.owner.username)
	}
	if u.FindAlbum(album.name) != nil {
		return fmt.Errorf("%w: %q", ErrDuplicateAlbumName, album.name)
	}
	for i, p := range album.photos {
		album.photos[i] = u.AdoptPhoto(p)
	}
	album.owner = u
	u.albums = append(u.albums, album)
	return nil
}

// RemoveAlbum drops the album called name. Photos that no other album
// references leave the arena; files on disk are never touched.
func (u *User) RemoveAlbum(name string) {
	i := slices.IndexFunc(u.albums, func(a *Album) bool { return a.name == name })
	if i < 0 {
		return
	}
	u.albums[i].owner = nil
	u.albums = slices.Delete(u.albums, i, i+1)
	u.prune()
}

// RenameAlbum renames album, keeping names unique within the user.
func (u *User) RenameAlbum(album *Album, name string) error {
	if err := u.checkOwned(album); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if other := u.FindAlbum(name); other != nil && other != album {
		return fmt.Errorf("%w: %q", ErrDuplicateAlbumName, name)
	}
	return album.Rename(name)
}

// Photo returns the user's photo for path, or nil.
func (u *User) Photo(path string) *Photo {
	return u.photos[path]
}

// AdoptPhoto returns the user's instance for photo's path, registering
// photo as that instance if the path is new. Existing instances win.
func (u *User) AdoptPhoto(photo *Photo) *Photo {
	if existing, ok := u.photos[photo.path]; ok {
		return existing
	}
	u.photos[photo.path] = photo
	return photo
}

// AddPhoto inserts photo into album using the user's instance for its path.
func (u *User) AddPhoto(album *Album, photo *Photo) error {
	if err := u.checkOwned(album); err != nil {
		return err
	}
	if photo == nil {
		return fmt.Errorf("%w: nil photo", ErrInvalidArgument)
	}
	return album.AddPhoto(u.AdoptPhoto(photo))
}

// RemovePhoto removes photo from album and forgets it if no album still
// references it.
func (u *User) RemovePhoto(album *Album, photo *Photo) error {
	if err := u.checkOwned(album); err != nil {
		return err
	}
	album.RemovePhoto(photo)
	u.prune()
	return nil
}

// MovePhoto puts photo into to and, when deleteOriginal is set, takes it
// out of from. The destination insert happens first, so a failure leaves
// from unchanged. Without deleteOriginal both albums share the photo.
func (u *User) MovePhoto(photo *Photo, from, to *Album, deleteOriginal bool) error {
	if err := u.checkOwned(from); err != nil {
		return err
	}
	if err := u.checkOwned(to); err != nil {
		return err
	}
	if photo == nil {
		return fmt.Errorf("%w: nil photo", ErrInvalidArgument)
	}
	source := from.FindPhoto(photo.path)
	if source == nil {
		return fmt.Errorf("%w: %s is not in album %q", ErrNotFound, photo.path, from.name)
	}
	if to.Contains(source) {
		return fmt.Errorf("%w: %s already in album %q", ErrDuplicateInDestination, photo.path, to.name)
	}
	if err := to.AddPhoto(source); err != nil {
		return err
	}
	if deleteOriginal {
		from.RemovePhoto(source)
	}
	return nil
}

// Photos returns every photo referenced by the user's albums, ordered by
// first appearance (album order, then position in album).
func (u *User) Photos() []*Photo {
	seen := make(map[string]bool, len(u.photos))
	var out []*Photo
	for _, a := range u.albums {
		for _, p := range a.photos {
			if !seen[p.path] {
				seen[p.path] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// TagNames returns every distinct tag name used by the user's photos in
// first-appearance order.
func (u *User) TagNames() []string {
	var names []string
	for _, p := range u.Photos() {
		for _, t := range p.tags {
			if !slices.Contains(names, t.name) {
				names = append(names, t.name)
			}
		}
	}
	return names
}

func (u *User) checkOwned(album *Album) error {
	if album == nil {
		return fmt.Errorf("%w: nil album", ErrInvalidArgument)
	}
	if album.owner != u {
		return fmt.Errorf("%w: %q is not an album of %s", ErrAlbumNotOwned, album.name, u.username)
	}
	return nil
}

// prune drops arena entries no album references any more.
func (u *User) prune() {
	live := make(map[string]bool, len(u.photos))
	for _, a := range u.albums {
		for _, p := range a.photos {
			live[p.path] = true
		}
	}
	for path := range u.photos {
		if !live[path] {
			delete(u.photos, path)
		}
	}
}
