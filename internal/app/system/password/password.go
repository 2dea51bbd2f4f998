// internal/app/system/password/password.go

// Package password derives and checks the stored {salt, hashed} credential
// pair. The scheme is hex-encoded HMAC-SHA1 of the plaintext keyed by a
// per-user random salt; it is kept for wire/data compatibility with records
// written by earlier deployments.
package password

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/tnorman/wayfarer/internal/domain/models"
)

// MakeSalt returns a fresh random salt token. Uniqueness is probabilistic,
// not enforced.
func MakeSalt() string {
	return uuid.NewString()
}

// Encrypt returns the hex HMAC-SHA1 digest of password keyed by salt.
func Encrypt(password, salt string) string {
	mac := hmac.New(sha1.New, []byte(salt))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}

// Set overwrites cred with a fresh salt and the hash of plaintext. The
// caller is responsible for persisting the record.
func Set(cred *models.Credential, plaintext string) {
	cred.Salt = MakeSalt()
	cred.Hashed = Encrypt(plaintext, cred.Salt)
}

// Verify reports whether plaintext re-derives the stored hash.
func Verify(cred models.Credential, plaintext string) bool {
	derived := Encrypt(plaintext, cred.Salt)
	return hmac.Equal([]byte(derived), []byte(cred.Hashed))
}
