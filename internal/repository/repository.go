package repository

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"photos-go/internal/photos"
)

// Repository stores user graphs as encoded records in a RecordStore,
// keyed by username.
type Repository struct {
	store  photos.RecordStore
	codec  *Codec
	logger photos.Logger
}

var _ photos.Repository = (*Repository)(nil)

// New creates a Repository over store.
func New(store photos.RecordStore, codec *Codec, logger photos.Logger) *Repository {
	return &Repository{store: store, codec: codec, logger: logger}
}

// checkName rejects usernames that cannot safely name a record. Names
// starting with "." are hidden from store listings and reserved for
// temporary files.
func checkName(username string) error {
	if username == "" || strings.HasPrefix(username, ".") ||
		strings.ContainsAny(username, `/\`) || strings.ContainsRune(username, 0) {
		return fmt.Errorf("%w: %q cannot be used as a record name", photos.ErrInvalidArgument, username)
	}
	return nil
}

func (r *Repository) Save(user *photos.User) error {
	if err := checkName(user.Username()); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := r.codec.Encode(&buf, user); err != nil {
		return err
	}
	if err := r.store.PutRecord(user.Username(), &buf, int64(buf.Len())); err != nil {
		return fmt.Errorf("writing record for %q: %w", user.Username(), err)
	}
	r.logger.Debug("record saved", "username", user.Username())
	return nil
}

func (r *Repository) Load(username string) (*photos.User, error) {
	if err := checkName(username); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.store.GetRecord(username, &buf); err != nil {
		return nil, fmt.Errorf("reading record for %q: %w", username, err)
	}
	user, err := r.codec.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decoding record for %q: %w", username, err)
	}
	if user.Username() != username {
		return nil, fmt.Errorf("%w: record %q holds user %q", photos.ErrCorrupt, username, user.Username())
	}
	return user, nil
}

func (r *Repository) LoadAll() (map[string]*photos.User, error) {
	names, err := r.store.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	users := make(map[string]*photos.User, len(names))
	for _, name := range names {
		user, err := r.Load(name)
		if err != nil {
			if errors.Is(err, photos.ErrCorrupt) {
				r.logger.Warn("skipping corrupt record", "username", name, "error", err)
				continue
			}
			return nil, err
		}
		users[name] = user
	}
	return users, nil
}

func (r *Repository) Delete(username string) error {
	if err := checkName(username); err != nil {
		return err
	}
	if err := r.store.DeleteRecord(username); err != nil {
		return fmt.Errorf("deleting record for %q: %w", username, err)
	}
	r.logger.Debug("record deleted", "username", username)
	return nil
}

func (r *Repository) List() ([]string, error) {
	names, err := r.store.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return names, nil
}
