package document

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"credvault/internal/app/server/api/http/middleware/auth"
	"credvault/internal/domain/document"
)

type Handler struct {
	service    document.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service document.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.putOp(), h.put)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	docs, err := h.service.List(ctx, userID)
	if err != nil {
		h.log.Error("list documents failed", "error", err)
		return nil, huma.Error500InternalServerError("failed to list documents")
	}

	out := &listOutput{Body: ListResponse{Documents: make([]DocumentBody, 0, len(docs))}}
	for _, doc := range docs {
		out.Body.Documents = append(out.Body.Documents, DocumentBody{
			ID:        doc.ID,
			Label:     doc.Label,
			Username:  doc.Username,
			Secret:    doc.Secret,
			Notes:     doc.Notes,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	id, err := h.service.Create(ctx, document.Document{
		UserID:    userID,
		Label:     input.Body.Label,
		Username:  input.Body.Username,
		Secret:    input.Body.Secret,
		Notes:     input.Body.Notes,
		CreatedAt: input.Body.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, document.ErrInvalidInput) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("create document failed", "error", err)
		return nil, huma.Error500InternalServerError("failed to create document")
	}

	return &createOutput{Body: CreateResponse{ID: id}}, nil
}

func (h *Handler) put(ctx context.Context, input *putInput) (*putOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	err := h.service.Update(ctx, document.Document{
		ID:        input.ID,
		UserID:    userID,
		Label:     input.Body.Label,
		Username:  input.Body.Username,
		Secret:    input.Body.Secret,
		Notes:     input.Body.Notes,
		CreatedAt: input.Body.CreatedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, document.ErrNotFound):
			return nil, huma.Error404NotFound("document not found")
		case errors.Is(err, document.ErrInvalidInput):
			return nil, huma.Error400BadRequest(err.Error())
		default:
			h.log.Error("update document failed", "document_id", input.ID, "error", err)
			return nil, huma.Error500InternalServerError("failed to update document")
		}
	}

	return &putOutput{Body: StatusResponse{Status: "OK"}}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		h.log.Error("delete document failed", "document_id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to delete document")
	}

	return &deleteOutput{Body: StatusResponse{Status: "OK"}}, nil
}
