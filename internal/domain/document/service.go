package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, userID string) ([]Document, error)
	Create(ctx context.Context, doc Document) (string, error)
	Update(ctx context.Context, doc Document) error
	Delete(ctx context.Context, userID, documentID string) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "document_service"),
	}
}

// List returns the user's documents in creation order.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	docs, err := s.repo.List(ctx, userID)
	if err != nil {
		s.log.Error("failed to list documents", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Create stores a new document under a generated identifier and returns
// it. The identifier never changes afterwards.
func (s *Service) Create(ctx context.Context, doc Document) (string, error) {
	if err := validate(doc); err != nil {
		return "", err
	}

	doc.ID = uuid.NewString()
	if err := s.repo.Create(ctx, doc); err != nil {
		s.log.Error("failed to create document", "user_id", doc.UserID, "error", err)
		return "", fmt.Errorf("create document: %w", err)
	}

	s.log.Debug("document created", "document_id", doc.ID)
	return doc.ID, nil
}

// Update replaces the stored document in full.
func (s *Service) Update(ctx context.Context, doc Document) error {
	if doc.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidInput)
	}
	if err := validate(doc); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, doc); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to update document", "document_id", doc.ID, "error", err)
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// Delete removes the document. Deleting a document that is already gone
// is success: the end state is the same either way.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	err := s.repo.Delete(ctx, userID, documentID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.log.Error("failed to delete document", "document_id", documentID, "error", err)
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func validate(doc Document) error {
	if doc.UserID == "" {
		return fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	if doc.Secret == "" {
		return fmt.Errorf("%w: missing secret", ErrInvalidInput)
	}
	return nil
}
