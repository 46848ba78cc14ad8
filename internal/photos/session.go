package photos

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Session is one logged-in user's working state: the in-memory graph and
// the tag vocabulary offered while it is open. Nothing is written until
// the session is saved or logged out through LibraryService.
type Session struct {
	ID         string
	User       *User
	Vocabulary *TagVocabulary
	StartedAt  time.Time
}

func newSession(id string, user *User, startedAt time.Time) *Session {
	vocab := NewTagVocabulary()
	for _, name := range user.TagNames() {
		_ = vocab.Register(name)
	}
	return &Session{ID: id, User: user, Vocabulary: vocab, StartedAt: startedAt}
}

// Album returns the user's album called name.
func (s *Session) Album(name string) (*Album, error) {
	album := s.User.FindAlbum(name)
	if album == nil {
		return nil, fmt.Errorf("%w: album %q", ErrNotFound, name)
	}
	return album, nil
}

// Photo returns the photo at rawPath inside album albumName. rawPath may
// be relative to the working directory.
func (s *Session) Photo(albumName, rawPath string) (*Photo, error) {
	album, err := s.Album(albumName)
	if err != nil {
		return nil, err
	}
	if p := album.FindPhoto(rawPath); p != nil {
		return p, nil
	}
	if abs, err := filepath.Abs(rawPath); err == nil {
		if p := album.FindPhoto(abs); p != nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: photo %s in album %q", ErrNotFound, rawPath, albumName)
}

// CreateAlbum adds an empty album.
func (s *Session) CreateAlbum(name string) (*Album, error) {
	return s.User.CreateAlbum(name)
}

// RenameAlbum renames album oldName to newName.
func (s *Session) RenameAlbum(oldName, newName string) error {
	album, err := s.Album(oldName)
	if err != nil {
		return err
	}
	return s.User.RenameAlbum(album, newName)
}

// DeleteAlbum removes album name. Deleting a missing album is a no-op.
func (s *Session) DeleteAlbum(name string) {
	s.User.RemoveAlbum(name)
}

// RemovePhoto takes the photo at rawPath out of album albumName.
func (s *Session) RemovePhoto(albumName, rawPath string) error {
	photo, err := s.Photo(albumName, rawPath)
	if err != nil {
		return err
	}
	album, _ := s.Album(albumName)
	return s.User.RemovePhoto(album, photo)
}

// SetCaption sets a non-empty caption on a photo.
func (s *Session) SetCaption(albumName, rawPath, caption string) error {
	if strings.TrimSpace(caption) == "" {
		return fmt.Errorf("%w: caption is empty", ErrInvalidArgument)
	}
	photo, err := s.Photo(albumName, rawPath)
	if err != nil {
		return err
	}
	photo.SetCaption(caption)
	return nil
}

// AddTag tags a photo and offers the tag's name in the vocabulary from now on.
func (s *Session) AddTag(albumName, rawPath string, tag Tag) error {
	photo, err := s.Photo(albumName, rawPath)
	if err != nil {
		return err
	}
	if err := photo.AddTag(tag); err != nil {
		return err
	}
	return s.Vocabulary.Register(tag.name)
}

// RemoveTag removes a tag from a photo.
func (s *Session) RemoveTag(albumName, rawPath string, tag Tag) error {
	photo, err := s.Photo(albumName, rawPath)
	if err != nil {
		return err
	}
	return photo.RemoveTag(tag)
}

// CopyPhoto shares the photo at rawPath from one album into another.
func (s *Session) CopyPhoto(fromName, toName, rawPath string) error {
	return s.transfer(fromName, toName, rawPath, false)
}

// MovePhoto moves the photo at rawPath from one album to another.
func (s *Session) MovePhoto(fromName, toName, rawPath string) error {
	return s.transfer(fromName, toName, rawPath, true)
}

func (s *Session) transfer(fromName, toName, rawPath string, deleteOriginal bool) error {
	photo, err := s.Photo(fromName, rawPath)
	if err != nil {
		return err
	}
	from, _ := s.Album(fromName)
	to, err := s.Album(toName)
	if err != nil {
		return err
	}
	return s.User.MovePhoto(photo, from, to, deleteOriginal)
}

// Materialize saves photos as a new album of the session's user.
func (s *Session) Materialize(name string, photos []*Photo) (*Album, error) {
	return Materialize(s.User, name, photos)
}
