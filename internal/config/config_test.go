package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func sampleConfig() *Config {
	return &Config{
		BaseDir:  "/home/user/.local/share/photos",
		LogDir:   "/home/user/.local/share/photos/log",
		StockDir: "/opt/photos/stockPhotos",
		Store: StoreConfig{
			Type:     "s3",
			S3Bucket: "family-photos",
			S3Prefix: "records",
			S3Region: "eu-west-1",
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  "/home/user/.local/share/photos/keys/photos.pub",
			PrivateKeyPath: "/home/user/.local/share/photos/keys/photos.key",
		},
	}
}

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		original := sampleConfig()

		var buf bytes.Buffer
		m := &Manager{Format: format}

		if err := m.Write(&buf, original); err != nil {
			t.Fatalf("Write(format %d) error = %v", format, err)
		}

		got, err := m.Read(&buf)
		if err != nil {
			t.Fatalf("Read(format %d) error = %v", format, err)
		}

		if got.BaseDir != original.BaseDir {
			t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
		}
		if got.StockDir != original.StockDir {
			t.Errorf("StockDir = %q, want %q", got.StockDir, original.StockDir)
		}
		if got.Store != original.Store {
			t.Errorf("Store = %+v, want %+v", got.Store, original.Store)
		}
		if got.Encryption != original.Encryption {
			t.Errorf("Encryption = %+v, want %+v", got.Encryption, original.Encryption)
		}
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/photos")

	if cfg.LogDir != "/data/photos/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/photos/log")
	}
	if cfg.Store.Type != "filesystem" {
		t.Errorf("Store.Type = %q, want %q", cfg.Store.Type, "filesystem")
	}
	if cfg.Store.UsersDir != "/data/photos/users" {
		t.Errorf("Store.UsersDir = %q, want %q", cfg.Store.UsersDir, "/data/photos/users")
	}
	if cfg.Store.StockPath != "/data/photos/stock.dat" {
		t.Errorf("Store.StockPath = %q, want %q", cfg.Store.StockPath, "/data/photos/stock.dat")
	}
	if cfg.Encryption.Enabled() {
		t.Error("Encryption.Enabled() = true, want false by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "memory store", mutate: func(c *Config) { c.Store = StoreConfig{Type: "memory"} }},
		{name: "sqlite without data dir", mutate: func(c *Config) { c.Store = StoreConfig{Type: "sqlite"} }, wantErr: true},
		{name: "sqlite with data dir", mutate: func(c *Config) { c.Store = StoreConfig{Type: "sqlite", DataDir: "/db"} }},
		{name: "s3 without bucket", mutate: func(c *Config) { c.Store = StoreConfig{Type: "s3"} }, wantErr: true},
		{name: "unknown store", mutate: func(c *Config) { c.Store.Type = "ftp" }, wantErr: true},
		{name: "filesystem without users dir", mutate: func(c *Config) { c.Store.UsersDir = "" }, wantErr: true},
		{name: "unknown encryption", mutate: func(c *Config) { c.Encryption.Type = "rot13" }, wantErr: true},
		{name: "age without keys", mutate: func(c *Config) {
			c.Encryption = EncryptionConfig{Type: "age"}
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("/data/photos")
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"photos.toml": FormatTOML,
		"photos.yaml": FormatYAML,
		"photos.YML":  FormatYAML,
		"photos":      FormatTOML,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %d, want %d", path, got, want)
		}
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "photos.toml")

		if err := Init(path, NewConfig(dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "photos.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		if err := Init(path, cfg); err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	for _, name := range []string{"photos.toml", "photos.yaml"} {
		t.Run("reads valid config "+name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, name)
			cfg := NewConfig(dir)
			cfg.Store = StoreConfig{Type: "memory"}

			if err := Init(path, cfg); err != nil {
				t.Fatalf("Init() error = %v", err)
			}

			got, err := ReadFromFile(path)
			if err != nil {
				t.Fatalf("ReadFromFile() error = %v", err)
			}
			if got.Store.Type != "memory" {
				t.Errorf("Store.Type = %q, want %q", got.Store.Type, "memory")
			}
			if got.BaseDir != dir {
				t.Errorf("BaseDir = %q, want %q", got.BaseDir, dir)
			}
		})
	}

	t.Run("returns error for missing file", func(t *testing.T) {
		if _, err := ReadFromFile("/nonexistent/path/photos.toml"); err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})

	t.Run("rejects invalid store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "photos.toml")
		if err := os.WriteFile(path, []byte("[store]\ntype = \"ftp\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadFromFile(path); err == nil {
			t.Fatal("ReadFromFile() expected validation error")
		}
	})
}
