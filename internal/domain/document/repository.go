package document

import "context"

type Repository interface {
	List(ctx context.Context, userID string) ([]Document, error)
	Create(ctx context.Context, doc Document) error
	// Update replaces the document in full; ErrNotFound when no document
	// with that id belongs to the user.
	Update(ctx context.Context, doc Document) error
	// Delete reports ErrNotFound for a missing document; callers decide
	// whether that is an error.
	Delete(ctx context.Context, userID, documentID string) error
}
