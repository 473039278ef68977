// Package devicelock is the local unlock gate in front of the vault: a
// device passphrase enrolled once and verified with argon2id on every
// launch. It stands in for biometric/device-credential prompts and
// reports the same three outcomes: success, failed, error.
package devicelock

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	saltLength = 16
)

// ErrNotEnrolled is returned when no verifier has been stored yet.
var ErrNotEnrolled = errors.New("device lock not enrolled")

// Verifier persists the enrolled salt+hash pair.
type Verifier struct {
	Salt []byte
	Hash []byte
}

// Enroll derives a verifier for the passphrase.
func Enroll(passphrase string) (Verifier, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return Verifier{}, fmt.Errorf("generate salt: %w", err)
	}

	return Verifier{
		Salt: salt,
		Hash: derive(passphrase, salt),
	}, nil
}

// Verify checks the passphrase against the stored verifier in constant
// time.
func (v Verifier) Verify(passphrase string) bool {
	if len(v.Salt) == 0 || len(v.Hash) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(v.Hash, derive(passphrase, v.Salt)) == 1
}

func derive(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifierStore loads and saves the verifier; backed by the client state
// store.
type VerifierStore interface {
	LoadVerifier() (Verifier, error)
	SaveVerifier(Verifier) error
}

// PassphraseReader obtains the passphrase from the user, typically via a
// terminal prompt with echo disabled.
type PassphraseReader func() (string, error)

// Outcome is the result of a single unlock attempt.
type Outcome int

const (
	Success Outcome = iota
	Failed
	Error
)

// Prompt verifies one passphrase attempt against the enrolled verifier.
// Failed means the passphrase did not match; Error means the subsystem
// itself broke (no verifier, unreadable store, aborted prompt).
type Prompt struct {
	store VerifierStore
	read  PassphraseReader
}

func NewPrompt(store VerifierStore, read PassphraseReader) *Prompt {
	return &Prompt{store: store, read: read}
}

// Show runs one unlock attempt.
func (p *Prompt) Show() (Outcome, string) {
	verifier, err := p.store.LoadVerifier()
	if err != nil {
		return Error, err.Error()
	}

	passphrase, err := p.read()
	if err != nil {
		return Error, err.Error()
	}

	if !verifier.Verify(passphrase) {
		return Failed, ""
	}
	return Success, ""
}
