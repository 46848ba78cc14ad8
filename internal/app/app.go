package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"photos-go/internal/config"
	"photos-go/internal/encryption"
	"photos-go/internal/fs"
	"photos-go/internal/photos"
	"photos-go/internal/recordstore"
	"photos-go/internal/repository"
)

// PassphraseFunc supplies the encryption passphrase when it is needed.
type PassphraseFunc func() (string, error)

// Options tune how a PhotosApp is built.
type Options struct {
	// Passphrase is consulted once when records are encrypted.
	Passphrase PassphraseFunc
	// StderrLevel is the lowest level echoed to stderr. Every level goes to the log file.
	StderrLevel slog.Level
}

// PhotosApp is the application layer between the CLI and LibraryService.
// It constructs all dependencies from config, exposes high-level operations
// keyed by username, and releases the record store on Close.
type PhotosApp struct {
	cfg       *config.Config
	store     photos.RecordStore
	fsmgr     photos.FilesystemManager
	encryptor photos.Encryptor
	service   *photos.LibraryService
	logger    photos.Logger
	logFile   *os.File
	sessionID string
}

// NewPhotosApp creates a fully wired PhotosApp from the given config.
// The caller must call Close when done.
func NewPhotosApp(cfg *config.Config, opts Options) (*PhotosApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	sessionID := time.Now().UTC().Format("20060102T150405Z")
	l, logFile, err := newLogger(cfg.LogDir, sessionID, opts.StderrLevel)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: l}

	store, err := recordstore.NewRecordStoreFromConfig(cfg.Store)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating record store: %w", err)
	}

	a := &PhotosApp{
		cfg:       cfg,
		store:     store,
		fsmgr:     fs.NewOSFilesystemManager(),
		logger:    logger,
		logFile:   logFile,
		sessionID: sessionID,
	}

	if err := store.ValidateSetup(); err != nil {
		a.Close()
		return nil, fmt.Errorf("record store not usable: %w", err)
	}

	codec, err := a.newCodec(opts.Passphrase)
	if err != nil {
		a.Close()
		return nil, err
	}

	repo := repository.New(store, codec, logger)
	a.service = photos.NewLibraryService(repo, a.fsmgr, logger, photos.RealClock{}, photos.UUIDGenerator{})
	return a, nil
}

// newCodec builds the record codec. With encryption enabled the key pair
// must exist and the private key is unlocked for the whole run.
func (a *PhotosApp) newCodec(passphrase PassphraseFunc) (*repository.Codec, error) {
	enc, err := encryption.NewEncryptorFromConfig(a.cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}
	if enc == nil {
		return repository.NewCodec(), nil
	}
	if !enc.IsConfigured() {
		return nil, fmt.Errorf("encryption is enabled but no keys exist: run 'photos encryption setup'")
	}
	if passphrase == nil {
		return nil, fmt.Errorf("encrypted library requires a passphrase")
	}
	p, err := passphrase()
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	dec, err := enc.Unlock(p)
	if err != nil {
		return nil, fmt.Errorf("unlocking records: %w", err)
	}
	a.encryptor = enc
	return repository.NewEncryptedCodec(enc, dec), nil
}

// SetupEncryption generates the key pair configured in cfg.
func SetupEncryption(cfg *config.Config, passphrase string) error {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if enc == nil {
		return fmt.Errorf("encryption type is %q: set encryption.type to \"age\" first", cfg.Encryption.Type)
	}
	return enc.Setup(passphrase)
}

// CreateUser registers username with an empty library.
func (a *PhotosApp) CreateUser(username string) error {
	_, err := a.service.CreateUser(username)
	return err
}

// DeleteUser removes username and everything it owns.
func (a *PhotosApp) DeleteUser(username string) error {
	return a.service.DeleteUser(username)
}

// ListUsers returns the regular usernames, sorted.
func (a *PhotosApp) ListUsers() ([]string, error) {
	return a.service.ListUsers()
}

// BootstrapStock creates or refreshes the stock library from the
// configured stock directory.
func (a *PhotosApp) BootstrapStock() (int, error) {
	return a.service.BootstrapStock(a.cfg.StockDir)
}

// View opens a session on username for fn and discards any changes.
func (a *PhotosApp) View(username string, fn func(*photos.Session) error) error {
	session, err := a.service.Login(username)
	if err != nil {
		return err
	}
	return fn(session)
}

// Update opens a session on username, runs fn, and saves the user when fn
// succeeds. A failing fn leaves the stored record untouched.
func (a *PhotosApp) Update(username string, fn func(*photos.Session) error) error {
	session, err := a.service.Login(username)
	if err != nil {
		return err
	}
	if err := fn(session); err != nil {
		return err
	}
	return a.service.Logout(session)
}

// AddPhoto adds the image at rawPath to album.
func (a *PhotosApp) AddPhoto(username, album, rawPath string) (*photos.Photo, error) {
	var added *photos.Photo
	err := a.Update(username, func(s *photos.Session) error {
		p, err := a.service.AddPhoto(s, album, rawPath)
		added = p
		return err
	})
	return added, err
}

// SearchRequest describes one search over a user's photos.
type SearchRequest struct {
	Album  string // empty searches every album
	Query  photos.Query
	SaveAs string // when set, results become a new album with this name
}

// Search runs req for username. When req.SaveAs is set the results are
// materialized into a new album and the user is saved.
func (a *PhotosApp) Search(username string, req SearchRequest) ([]*photos.Photo, error) {
	var results []*photos.Photo
	run := func(s *photos.Session) error {
		found, err := a.service.Search(s, req.Album, req.Query)
		if err != nil {
			return err
		}
		results = found
		if req.SaveAs == "" {
			return nil
		}
		if _, err := s.Materialize(req.SaveAs, found); err != nil {
			return err
		}
		a.logger.Info("search saved as album", "username", username, "album", req.SaveAs, "photos", len(found))
		return nil
	}

	var err error
	if req.SaveAs == "" {
		err = a.View(username, run)
	} else {
		err = a.Update(username, run)
	}
	return results, err
}

// Tree renders username's albums and photos.
func (a *PhotosApp) Tree(username string) (string, error) {
	var out string
	err := a.View(username, func(s *photos.Session) error {
		out = RenderTree(s.User)
		return nil
	})
	return out, err
}

// Close releases the record store and the log file.
func (a *PhotosApp) Close() error {
	var errs []error
	if c, ok := a.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing record store: %w", err))
		}
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing log file: %w", err))
		}
	}
	return errors.Join(errs...)
}
