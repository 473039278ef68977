package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/document"
)

type DocumentRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewDocumentRepository(pool *pgxpool.Pool, log *slog.Logger) *DocumentRepository {
	return &DocumentRepository{
		pool: pool,
		log:  log.With("component", "document_repository"),
	}
}

func (r *DocumentRepository) List(ctx context.Context, userID string) ([]document.Document, error) {
	const query = `
		SELECT id, user_id, label, username, secret, notes, created_at, updated_at
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list documents", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		var doc document.Document
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.Label, &doc.Username,
			&doc.Secret, &doc.Notes, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *DocumentRepository) Create(ctx context.Context, doc document.Document) error {
	const query = `
		INSERT INTO documents (id, user_id, label, username, secret, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		doc.ID, doc.UserID, doc.Label, doc.Username, doc.Secret, doc.Notes, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Update(ctx context.Context, doc document.Document) error {
	const query = `
		UPDATE documents
		SET label = $1, username = $2, secret = $3, notes = $4, created_at = $5,
		    updated_at = NOW()
		WHERE id = $6 AND user_id = $7`

	tag, err := r.pool.Exec(ctx, query,
		doc.Label, doc.Username, doc.Secret, doc.Notes, doc.CreatedAt,
		doc.ID, doc.UserID)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return document.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, userID, documentID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM documents WHERE id = $1 AND user_id = $2`, documentID, userID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return document.ErrNotFound
	}
	return nil
}
