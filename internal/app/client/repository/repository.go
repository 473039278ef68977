// Package repository reconciles the in-memory vault with the remote
// per-user document collection, encrypting secrets on the way out and
// decrypting them on the way in. It keeps no cache and performs no
// retries; every call is a single round trip and callers reload after
// each successful mutation.
package repository

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"credvault/internal/app/client/vaultcrypt"
	"credvault/internal/domain/credential"
)

var (
	// ErrWriteFailed wraps any remote rejection of add, update or delete.
	ErrWriteFailed = errors.New("repository write failed")

	// ErrNotFound is returned by DocumentStore implementations when the
	// addressed document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrUnsavedRecord is returned when Update is called on a record that
	// was never persisted.
	ErrUnsavedRecord = errors.New("record has no document id")
)

// Document is the persisted form of a credential: every field plaintext
// except Secret, which holds the encrypted blob.
type Document struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Username  string `json:"username"`
	Secret    string `json:"secret"`
	Notes     string `json:"notes"`
	CreatedAt int64  `json:"created_at"`
}

// DocumentStore is the remote per-user collection: get-all,
// create-with-generated-id, set-by-id and delete-by-id, with eventual
// visibility of a resolved write at the next read.
type DocumentStore interface {
	GetAll(ctx context.Context, userID string) ([]Document, error)
	Create(ctx context.Context, userID string, doc Document) (string, error)
	Put(ctx context.Context, userID string, doc Document) error
	Delete(ctx context.Context, userID, documentID string) error
}

// Repository encrypts on write and decrypts on read.
type Repository struct {
	store  DocumentStore
	cipher *vaultcrypt.Cipher
	log    *slog.Logger
}

func New(store DocumentStore, cipher *vaultcrypt.Cipher, log *slog.Logger) *Repository {
	return &Repository{
		store:  store,
		cipher: cipher,
		log:    log.With("component", "credential_repository"),
	}
}

// Load fetches the user's collection and returns the decrypted records in
// store order, plus the number of records dropped because their secret
// failed to decrypt. One corrupted document must not deny access to the
// rest of the vault, so such documents are skipped, not fatal.
func (r *Repository) Load(ctx context.Context, userID string) ([]credential.Record, int, error) {
	docs, err := r.store.GetAll(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("load documents: %w", err)
	}

	records := make([]credential.Record, 0, len(docs))
	dropped := 0
	for _, doc := range docs {
		secret, err := r.cipher.Decrypt(doc.Secret)
		if err != nil {
			dropped++
			r.log.Warn("skipping corrupted document",
				"document_id", doc.ID, "error", err)
			continue
		}

		records = append(records, credential.Record{
			Label:      doc.Label,
			Username:   doc.Username,
			Secret:     secret,
			Notes:      doc.Notes,
			CreatedAt:  doc.CreatedAt,
			DocumentID: doc.ID,
		})
	}

	return records, dropped, nil
}

// Add encrypts the secret and creates a new document, returning the
// identifier the store assigned. Either the document exists with all
// fields afterwards or it does not exist at all.
func (r *Repository) Add(ctx context.Context, userID string, rec credential.Record) (string, error) {
	doc, err := r.encode(rec)
	if err != nil {
		return "", err
	}

	id, err := r.store.Create(ctx, userID, doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return id, nil
}

// Update overwrites the document identified by rec.DocumentID in full.
func (r *Repository) Update(ctx context.Context, userID string, rec credential.Record) error {
	if !rec.Saved() {
		return ErrUnsavedRecord
	}

	doc, err := r.encode(rec)
	if err != nil {
		return err
	}
	doc.ID = rec.DocumentID

	if err := r.store.Put(ctx, userID, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return nil
}

// Delete removes the document. Deleting an identifier that no longer
// exists resolves as success.
func (r *Repository) Delete(ctx context.Context, userID, documentID string) error {
	err := r.store.Delete(ctx, userID, documentID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (r *Repository) encode(rec credential.Record) (Document, error) {
	blob, err := r.cipher.Encrypt(rec.Secret)
	if err != nil {
		return Document{}, fmt.Errorf("encrypt secret: %w", err)
	}

	return Document{
		Label:     rec.Label,
		Username:  rec.Username,
		Secret:    blob,
		Notes:     rec.Notes,
		CreatedAt: rec.CreatedAt,
	}, nil
}
