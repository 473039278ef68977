package vaultcrypt

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCipher(t *testing.T) *Cipher {
	t.Helper()

	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	c, err := New(key)
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadKeySize(t *testing.T) {
	_, err := New(make([]byte, 16))
	assert.Error(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := testCipher(t)

	tests := []struct {
		name      string
		plaintext string
	}{
		{"simple password", "p@ssw0rd!"},
		{"empty string", ""},
		{"unicode", "пароль-ключ-🔑"},
		{"long", string(make([]byte, 4096))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := c.Encrypt(tt.plaintext)
			require.NoError(t, err)

			decrypted, err := c.Decrypt(blob)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, decrypted)
		})
	}
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	c := testCipher(t)

	first, err := c.Encrypt("same plaintext")
	require.NoError(t, err)
	second, err := c.Encrypt("same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "fresh IV per call must change the blob")
}

func TestDecryptDetectsTampering(t *testing.T) {
	c := testCipher(t)

	blob, err := c.Encrypt("sensitive")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)

	// flip one byte at every position: IV, ciphertext and tag regions all
	// have to trip the authentication check
	for i := range raw {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[i] ^= 0xff

		_, err := c.Decrypt(base64.StdEncoding.EncodeToString(tampered))
		assert.ErrorIs(t, err, ErrDecryptionFailed, "byte %d", i)
	}
}

func TestDecryptRejectsTruncatedBlob(t *testing.T) {
	c := testCipher(t)

	_, err := c.Decrypt(base64.StdEncoding.EncodeToString(make([]byte, ivLength+tagLength-1)))
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptRejectsInvalidBase64(t *testing.T) {
	c := testCipher(t)

	_, err := c.Decrypt("not base64 at all!!!")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	c1 := testCipher(t)
	c2 := testCipher(t)

	blob, err := c1.Encrypt("secret")
	require.NoError(t, err)

	_, err = c2.Decrypt(blob)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}
