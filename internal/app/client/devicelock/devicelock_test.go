package devicelock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollVerifyRoundTrip(t *testing.T) {
	verifier, err := Enroll("correct horse")
	require.NoError(t, err)

	assert.True(t, verifier.Verify("correct horse"))
	assert.False(t, verifier.Verify("wrong horse"))
	assert.False(t, verifier.Verify(""))
}

func TestEnrollSaltsDiffer(t *testing.T) {
	a, err := Enroll("same")
	require.NoError(t, err)
	b, err := Enroll("same")
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Hash, b.Hash)
}

func TestEmptyVerifierNeverVerifies(t *testing.T) {
	assert.False(t, Verifier{}.Verify("anything"))
}

type memVerifierStore struct {
	verifier Verifier
	err      error
}

func (m *memVerifierStore) LoadVerifier() (Verifier, error) { return m.verifier, m.err }
func (m *memVerifierStore) SaveVerifier(v Verifier) error   { m.verifier = v; return nil }

func TestPromptOutcomes(t *testing.T) {
	enrolled, err := Enroll("pass123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		store    *memVerifierStore
		read     PassphraseReader
		expected Outcome
	}{
		{
			name:     "success",
			store:    &memVerifierStore{verifier: enrolled},
			read:     func() (string, error) { return "pass123", nil },
			expected: Success,
		},
		{
			name:     "failed on wrong passphrase",
			store:    &memVerifierStore{verifier: enrolled},
			read:     func() (string, error) { return "nope", nil },
			expected: Failed,
		},
		{
			name:     "error when not enrolled",
			store:    &memVerifierStore{err: ErrNotEnrolled},
			read:     func() (string, error) { return "pass123", nil },
			expected: Error,
		},
		{
			name:     "error when prompt aborts",
			store:    &memVerifierStore{verifier: enrolled},
			read:     func() (string, error) { return "", errors.New("stdin closed") },
			expected: Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, _ := NewPrompt(tt.store, tt.read).Show()
			assert.Equal(t, tt.expected, outcome)
		})
	}
}
