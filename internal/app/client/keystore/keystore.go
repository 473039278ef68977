// Package keystore holds the installation's vault key, the way a platform
// key enclave would: alias-keyed, generated once, never exported beyond the
// single read needed to construct a cipher. Keys live as 0600 files in a
// 0700 directory under the client config dir.
package keystore

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"credvault/internal/app/client/vaultcrypt"
)

const (
	// DefaultAlias identifies the one key the vault uses. No rotation
	// surface exists.
	DefaultAlias = "credvault-encryption-key"

	keyFilePermissions = 0o600
	keyDirPermissions  = 0o700
)

// ErrKeyStoreUnavailable is returned when the backing store cannot be
// opened or written.
var ErrKeyStoreUnavailable = errors.New("key store unavailable")

// Store is an alias-keyed store of non-exportable symmetric keys.
type Store struct {
	dir string
}

// New opens the key store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, keyDirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyStoreUnavailable, err)
	}
	return &Store{dir: dir}, nil
}

// GetOrCreate returns the key stored under alias, generating and
// persisting a fresh 256-bit key on first use. Idempotent across calls
// and process restarts.
func (s *Store) GetOrCreate(alias string) ([]byte, error) {
	path := filepath.Join(s.dir, alias)

	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != vaultcrypt.KeySize {
			return nil, fmt.Errorf("%w: key %q has invalid length %d", ErrKeyStoreUnavailable, alias, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrKeyStoreUnavailable, err)
	}

	key = make([]byte, vaultcrypt.KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	if err := os.WriteFile(path, key, keyFilePermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyStoreUnavailable, err)
	}

	return key, nil
}

// Delete removes the key stored under alias. All data encrypted with it
// becomes unrecoverable.
func (s *Store) Delete(alias string) error {
	err := os.Remove(filepath.Join(s.dir, alias))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrKeyStoreUnavailable, err)
	}
	return nil
}
