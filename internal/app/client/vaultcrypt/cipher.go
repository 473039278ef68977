// Package vaultcrypt implements the authenticated encryption applied to
// credential secrets before they leave the device. A blob is the standard
// base64 encoding of iv || ciphertext || tag with a fixed 12-byte IV and
// 16-byte tag, so it can be sliced positionally without separators.
package vaultcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	ivLength  = 12
	tagLength = 16
)

// ErrDecryptionFailed covers tag mismatch, truncated input and wrong key.
// Callers never get partial plaintext alongside it.
var ErrDecryptionFailed = errors.New("decryption failed")

// Cipher encrypts and decrypts byte strings with a fixed vault key. It has
// no knowledge of what it is encrypting; the key is read-only after
// construction and safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// New builds a Cipher from a vault key obtained from the key store.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("vault key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random IV. Two calls on identical
// plaintext produce different blobs; IV reuse would void the GCM
// confidentiality guarantee because secrets are re-encrypted on every edit.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, ivLength)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	sealed := c.aead.Seal(nil, iv, []byte(plaintext), nil)

	combined := make([]byte, 0, ivLength+len(sealed))
	combined = append(combined, iv...)
	combined = append(combined, sealed...)

	return base64.StdEncoding.EncodeToString(combined), nil
}

// Decrypt reverses Encrypt, verifying the authentication tag. Any
// alteration of the blob yields ErrDecryptionFailed.
func (c *Cipher) Decrypt(blob string) (string, error) {
	combined, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	if len(combined) < ivLength+tagLength {
		return "", fmt.Errorf("%w: blob too short", ErrDecryptionFailed)
	}

	iv := combined[:ivLength]
	sealed := combined[ivLength:]

	plaintext, err := c.aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}
