package testutil

import (
	"photos-go/internal/encryption"
	"photos-go/internal/photos"
)

// NewTestEncryptor returns a configured deterministic encryptor whose
// passphrase is "secret".
func NewTestEncryptor() photos.Encryptor {
	e := encryption.NewTestEncryptor()
	e.Setup("secret")
	return e
}
