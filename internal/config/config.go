package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the main configuration for photos.
type Config struct {
	BaseDir    string           `toml:"base_dir" yaml:"base_dir"`
	LogDir     string           `toml:"log_dir" yaml:"log_dir"`
	StockDir   string           `toml:"stock_dir" yaml:"stock_dir"`
	Store      StoreConfig      `toml:"store" yaml:"store"`
	Encryption EncryptionConfig `toml:"encryption" yaml:"encryption"`
}

// StoreConfig selects where user records live.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StoreConfig struct {
	Type string `toml:"type" yaml:"type"` // "filesystem", "memory", "sqlite" or "s3"

	// Filesystem-specific fields (only used when Type == "filesystem")
	UsersDir  string `toml:"users_dir,omitempty" yaml:"users_dir,omitempty"`
	StockPath string `toml:"stock_path,omitempty" yaml:"stock_path,omitempty"`

	// SQLite-specific fields (only used when Type == "sqlite")
	DataDir string `toml:"data_dir,omitempty" yaml:"data_dir,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket       string `toml:"s3_bucket,omitempty" yaml:"s3_bucket,omitempty"`
	S3Prefix       string `toml:"s3_prefix,omitempty" yaml:"s3_prefix,omitempty"`
	S3Region       string `toml:"s3_region,omitempty" yaml:"s3_region,omitempty"`
	S3Endpoint     string `toml:"s3_endpoint,omitempty" yaml:"s3_endpoint,omitempty"`
	S3AccessKey    string `toml:"s3_access_key,omitempty" yaml:"s3_access_key,omitempty"`
	S3SecretKey    string `toml:"s3_secret_key,omitempty" yaml:"s3_secret_key,omitempty"`
	S3PathStyle    bool   `toml:"s3_path_style,omitempty" yaml:"s3_path_style,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

// EncryptionConfig controls at-rest encryption of user records.
type EncryptionConfig struct {
	Type           string `toml:"type" yaml:"type"` // "none" (default), "age" or "test"
	PublicKeyPath  string `toml:"public_key_path" yaml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path" yaml:"private_key_path"`
}

// Enabled reports whether records are encrypted.
func (c EncryptionConfig) Enabled() bool {
	return c.Type != "" && c.Type != "none"
}

// NewConfig creates a Config rooted at baseDir with a filesystem store laid
// out as one file per user under users/ and the stock record beside it.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		StockDir: filepath.Join(baseDir, "stockPhotos"),
		Store: StoreConfig{
			Type:      "filesystem",
			UsersDir:  filepath.Join(baseDir, "users"),
			StockPath: filepath.Join(baseDir, "stock.dat"),
		},
		Encryption: EncryptionConfig{
			Type:           "none",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "photos.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "photos.key"),
		},
	}
}

// Format names a config file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatForPath picks the encoding from the file extension; anything other
// than .yaml/.yml is TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Manager handles reading and writing configuration.
type Manager struct {
	Format Format
}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	switch m.Format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	default:
		if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	switch m.Format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	default:
		if err := toml.NewEncoder(w).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	}
	return nil
}

// Validate checks the fields each store type depends on.
func (c *Config) Validate() error {
	switch c.Store.Type {
	case "filesystem":
		if c.Store.UsersDir == "" || c.Store.StockPath == "" {
			return fmt.Errorf("filesystem store requires users_dir and stock_path")
		}
	case "sqlite":
		if c.Store.DataDir == "" {
			return fmt.Errorf("sqlite store requires data_dir")
		}
	case "s3":
		if c.Store.S3Bucket == "" {
			return fmt.Errorf("s3 store requires s3_bucket")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown store type: %q", c.Store.Type)
	}
	switch c.Encryption.Type {
	case "", "none", "test":
	case "age":
		if c.Encryption.PublicKeyPath == "" || c.Encryption.PrivateKeyPath == "" {
			return fmt.Errorf("age encryption requires public_key_path and private_key_path")
		}
	default:
		return fmt.Errorf("unknown encryption type: %q", c.Encryption.Type)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{Format: FormatForPath(path)}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{Format: FormatForPath(path)}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes cfg to path, refusing to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
