package photos

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// LibraryService coordinates the repository, the filesystem and the
// in-memory model to serve user lifecycle, sessions and searches.
type LibraryService struct {
	repo   Repository
	fsmgr  FilesystemManager
	logger Logger
	clock  Clock
	idgen  IDGenerator
}

// NewLibraryService creates a LibraryService with the provided dependencies.
func NewLibraryService(repo Repository, fsmgr FilesystemManager, logger Logger, clock Clock, idgen IDGenerator) *LibraryService {
	return &LibraryService{
		repo:   repo,
		fsmgr:  fsmgr,
		logger: logger,
		clock:  clock,
		idgen:  idgen,
	}
}

func isReserved(username string) bool {
	return username == AdminUsername || username == StockUsername
}

// CreateUser registers a new user and persists it immediately.
func (s *LibraryService) CreateUser(username string) (*User, error) {
	username = strings.TrimSpace(username)
	if isReserved(username) {
		return nil, fmt.Errorf("%w: %q is a reserved username", ErrInvalidArgument, username)
	}
	user, err := NewUser(username)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.Load(username)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %q", ErrDuplicateUser, username)
	case errors.Is(err, ErrCorrupt):
		return nil, fmt.Errorf("%w: %q has an unreadable record", ErrDuplicateUser, username)
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("checking for existing user: %w", err)
	}

	if err := s.repo.Save(user); err != nil {
		return nil, fmt.Errorf("saving new user: %w", err)
	}
	s.logger.Info("user created", "username", username)
	return user, nil
}

// DeleteUser removes a user's durable record.
func (s *LibraryService) DeleteUser(username string) error {
	username = strings.TrimSpace(username)
	if isReserved(username) {
		return fmt.Errorf("%w: %q cannot be deleted", ErrInvalidArgument, username)
	}
	names, err := s.repo.List()
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}
	if !slices.Contains(names, username) {
		return fmt.Errorf("%w: user %q", ErrNotFound, username)
	}
	if err := s.repo.Delete(username); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	s.logger.Info("user deleted", "username", username)
	return nil
}

// ListUsers returns the regular (non-stock) usernames, sorted.
func (s *LibraryService) ListUsers() ([]string, error) {
	names, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return slices.DeleteFunc(names, isReserved), nil
}

// LoadAllUsers returns every readable user, stock included.
func (s *LibraryService) LoadAllUsers() (map[string]*User, error) {
	return s.repo.LoadAll()
}

// Login loads username and opens a session on it.
func (s *LibraryService) Login(username string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is empty", ErrInvalidArgument)
	}
	if username == AdminUsername {
		return nil, fmt.Errorf("%w: %s has no photo library", ErrInvalidArgument, AdminUsername)
	}
	user, err := s.repo.Load(username)
	if err != nil {
		return nil, fmt.Errorf("loading user %q: %w", username, err)
	}
	session := newSession(s.idgen.New(), user, s.clock.Now())
	s.logger.Debug("session opened", "username", username, "session", session.ID)
	return session, nil
}

// Save checkpoints the session's user. On failure the in-memory graph is
// untouched and the previous record remains, so the caller may retry.
func (s *LibraryService) Save(session *Session) error {
	if err := s.repo.Save(session.User); err != nil {
		s.logger.Error("save failed", "username", session.User.Username(), "error", err)
		return fmt.Errorf("saving user %q: %w", session.User.Username(), err)
	}
	s.logger.Debug("user saved", "username", session.User.Username())
	return nil
}

// Logout saves the session's user and closes the session.
func (s *LibraryService) Logout(session *Session) error {
	if err := s.Save(session); err != nil {
		return err
	}
	s.logger.Debug("session closed", "username", session.User.Username(), "session", session.ID,
		"duration", s.clock.Now().Sub(session.StartedAt).String())
	return nil
}

// AddPhoto resolves rawPath and adds the photo to albumName. If the user
// already knows the path from another album, that photo is reused.
func (s *LibraryService) AddPhoto(session *Session, albumName, rawPath string) (*Photo, error) {
	album, err := session.Album(albumName)
	if err != nil {
		return nil, err
	}
	path, err := s.fsmgr.Resolve(rawPath)
	if err != nil {
		return nil, err
	}
	photo := session.User.Photo(path.String())
	if photo == nil {
		if photo, err = NewPhoto(path); err != nil {
			return nil, err
		}
	}
	if err := session.User.AddPhoto(album, photo); err != nil {
		return nil, err
	}
	s.logger.Debug("photo added", "album", albumName, "path", path.String())
	return session.User.Photo(path.String()), nil
}

// Search runs q over albumName, or over all of the user's photos when
// albumName is empty.
func (s *LibraryService) Search(session *Session, albumName string, q Query) ([]*Photo, error) {
	photos := session.User.Photos()
	if albumName != "" {
		album, err := session.Album(albumName)
		if err != nil {
			return nil, err
		}
		photos = album.Photos()
	}
	return q.Run(photos)
}
