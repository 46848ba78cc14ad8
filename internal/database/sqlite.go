package database

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"photos-go/internal/database/migrations"
	"photos-go/internal/photos"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore is a RecordStore keeping every record as a row of the
// records table. Each write stamps the row with a fresh revision.
type SQLiteStore struct {
	db    *sql.DB
	path  string
	clock photos.Clock
	idgen photos.IDGenerator
}

// NewSQLiteStore opens the database at path and migrates it to the latest
// schema. path can be a file path or ":memory:". A nil clock or idgen
// selects the real implementation.
func NewSQLiteStore(path string, clock photos.Clock, idgen photos.IDGenerator) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}

	if clock == nil {
		clock = photos.RealClock{}
	}
	if idgen == nil {
		idgen = photos.UUIDGenerator{}
	}
	return &SQLiteStore{db: db, path: path, clock: clock, idgen: idgen}, nil
}

// OpenConnection opens and configures a SQLite connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to ":memory:" would get its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	return db, nil
}

func (s *SQLiteStore) PutRecord(name string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return photos.IOFailure("reading record", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	_, err = s.db.ExecContext(context.Background(), `
		INSERT INTO records (name, data, size, revision, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			size = excluded.size,
			revision = excluded.revision,
			updated_at = excluded.updated_at`,
		name, data, size, s.idgen.New(), s.clock.Now().UTC())
	if err != nil {
		return photos.IOFailure("storing record", err)
	}
	return nil
}

func (s *SQLiteStore) GetRecord(name string, w io.Writer) error {
	var data []byte
	err := s.db.QueryRowContext(context.Background(),
		"SELECT data FROM records WHERE name = ?", name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("record %q: %w", name, photos.ErrNotFound)
		}
		return photos.IOFailure("loading record", err)
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return photos.IOFailure("writing record", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteRecord(name string) error {
	if _, err := s.db.ExecContext(context.Background(),
		"DELETE FROM records WHERE name = ?", name); err != nil {
		return photos.IOFailure("deleting record", err)
	}
	return nil
}

func (s *SQLiteStore) ListRecords() ([]string, error) {
	rows, err := s.db.QueryContext(context.Background(), "SELECT name FROM records ORDER BY name")
	if err != nil {
		return nil, photos.IOFailure("listing records", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, photos.IOFailure("scanning record name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, photos.IOFailure("listing records", err)
	}
	return names, nil
}

// Revision returns the revision stamped on the record's last write.
func (s *SQLiteStore) Revision(name string) (string, error) {
	var revision string
	err := s.db.QueryRowContext(context.Background(),
		"SELECT revision FROM records WHERE name = ?", name).Scan(&revision)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("record %q: %w", name, photos.ErrNotFound)
		}
		return "", photos.IOFailure("loading revision", err)
	}
	return revision, nil
}

// ValidateSetup pings the database and checks the schema version.
func (s *SQLiteStore) ValidateSetup() error {
	if err := s.db.Ping(); err != nil {
		return photos.IOFailure("pinging database", err)
	}
	if err := migrations.CheckDBMigrationStatus(s.db); err != nil {
		return fmt.Errorf("database %s: %w", s.path, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ photos.RecordStore = (*SQLiteStore)(nil)
