package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - PHOTOS_CONFIG_PATH: config file location (default: ~/.config/photos.toml)
//   - PHOTOS_HOME: base directory for photos data (default: ~/.local/share/photos)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
		"stock_dir":   filepath.Join(baseDir, "stockPhotos"),
	}, nil
}

// getConfigPath returns the config file path, checking PHOTOS_CONFIG_PATH first,
// then falling back to ~/.config/photos.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("PHOTOS_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "photos.toml"), nil
}

// getBaseDir returns the base directory for library data, checking PHOTOS_HOME first,
// then falling back to the XDG default ~/.local/share/photos.
func getBaseDir() (string, error) {
	if path := os.Getenv("PHOTOS_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "photos"), nil
}
