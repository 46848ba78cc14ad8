package recordstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"photos-go/internal/config"
	"photos-go/internal/database"
	"photos-go/internal/photos"
)

// NewRecordStoreFromConfig creates the RecordStore selected by cfg.Type.
// Stores holding resources (sqlite) implement io.Closer.
func NewRecordStoreFromConfig(cfg config.StoreConfig) (photos.RecordStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.UsersDir == "" || cfg.StockPath == "" {
			return nil, fmt.Errorf("filesystem store requires users_dir and stock_path to be set")
		}
		return NewFileSystemStore(cfg.UsersDir, cfg.StockPath)
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("sqlite store requires data_dir to be set")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, photos.IOFailure("creating data directory", err)
		}
		return database.NewSQLiteStore(filepath.Join(cfg.DataDir, "photos.db"), nil, nil)
	case "s3":
		return NewS3Store(context.Background(), S3Options{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PathStyle: cfg.S3PathStyle,
			Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
