package encryption

import (
	"fmt"

	"photos-go/internal/config"
	"photos-go/internal/photos"
)

// NewEncryptorFromConfig returns the encryptor selected by cfg.Type, or nil
// when records are stored in plaintext.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (photos.Encryptor, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "age":
		return NewAgeEncryptor(cfg), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}
