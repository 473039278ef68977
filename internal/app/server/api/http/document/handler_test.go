package document

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"credvault/internal/app/server/api/http/middleware/auth"
	"credvault/internal/domain/document"
)

type mockDocumentService struct {
	mock.Mock
}

func (m *mockDocumentService) List(ctx context.Context, userID string) ([]document.Document, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.Document), args.Error(1)
}

func (m *mockDocumentService) Create(ctx context.Context, doc document.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *mockDocumentService) Update(ctx context.Context, doc document.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *mockDocumentService) Delete(ctx context.Context, userID, documentID string) error {
	args := m.Called(ctx, userID, documentID)
	return args.Error(0)
}

func authedContext(userID string) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func newTestHandler(service *mockDocumentService) *Handler {
	return NewHandler(service, slog.Default(), huma.Middlewares{})
}

func TestHandler_list(t *testing.T) {
	service := new(mockDocumentService)
	handler := newTestHandler(service)

	service.On("List", mock.Anything, "u-1").Return([]document.Document{
		{ID: "d-1", UserID: "u-1", Label: "Email", Secret: "blob1", CreatedAt: 1000},
		{ID: "d-2", UserID: "u-1", Label: "Bank", Secret: "blob2", CreatedAt: 2000},
	}, nil)

	out, err := handler.list(authedContext("u-1"), &listInput{})

	assert.NoError(t, err)
	assert.Len(t, out.Body.Documents, 2)
	assert.Equal(t, "d-1", out.Body.Documents[0].ID)
	assert.Equal(t, "blob1", out.Body.Documents[0].Secret)
}

func TestHandler_list_EmptyVault(t *testing.T) {
	service := new(mockDocumentService)
	handler := newTestHandler(service)

	service.On("List", mock.Anything, "u-1").Return([]document.Document{}, nil)

	out, err := handler.list(authedContext("u-1"), &listInput{})

	assert.NoError(t, err)
	assert.NotNil(t, out.Body.Documents)
	assert.Empty(t, out.Body.Documents)
}

func TestHandler_list_Unauthenticated(t *testing.T) {
	service := new(mockDocumentService)
	handler := newTestHandler(service)

	_, err := handler.list(context.Background(), &listInput{})

	statusErr, ok := err.(huma.StatusError)
	assert.True(t, ok)
	assert.Equal(t, 401, statusErr.GetStatus())
	service.AssertNotCalled(t, "List")
}

func TestHandler_create(t *testing.T) {
	service := new(mockDocumentService)
	handler := newTestHandler(service)

	service.On("Create", mock.Anything, mock.MatchedBy(func(doc document.Document) bool {
		return doc.UserID == "u-1" && doc.Label == "Email" && doc.Secret == "blob"
	})).Return("d-new", nil)

	out, err := handler.create(authedContext("u-1"), &createInput{
		Body: DocumentBody{Label: "Email", Secret: "blob", CreatedAt: 1000},
	})

	assert.NoError(t, err)
	assert.Equal(t, "d-new", out.Body.ID)
}

func TestHandler_create_InvalidInput(t *testing.T) {
	service := new(mockDocumentService)
	handler := newTestHandler(service)

	service.On("Create", mock.Anything, mock.Anything).
		Return("", document.ErrInvalidInput)

	_, err := handler.create(authedContext("u-1"), &createInput{
		Body: DocumentBody{Label: "Email"},
	})

	statusErr, ok := err.(huma.StatusError)
	assert.True(t, ok)
	assert.Equal(t, 400, statusErr.GetStatus())
}

func TestHandler_put(t *testing.T) {
	service := new(mockDocumentService)
	handler := newTestHandler(service)

	service.On("Update", mock.Anything, mock.MatchedBy(func(doc document.Document) bool {
		return doc.ID == "d-1" && doc.UserID == "u-1"
	})).Return(nil)

	out, err := handler.put(authedContext("u-1"), &putInput{
		ID:   "d-1",
		Body: DocumentBody{Label: "Email", Secret: "blob", CreatedAt: 1000},
	})

	assert.NoError(t, err)
	assert.Equal(t, "OK", out.Body.Status)
}

func TestHandler_put_NotFound(t *testing.T) {
	service := new(mockDocumentService)
	handler := newTestHandler(service)

	service.On("Update", mock.Anything, mock.Anything).Return(document.ErrNotFound)

	_, err := handler.put(authedContext("u-1"), &putInput{
		ID:   "d-404",
		Body: DocumentBody{Secret: "blob"},
	})

	statusErr, ok := err.(huma.StatusError)
	assert.True(t, ok)
	assert.Equal(t, 404, statusErr.GetStatus())
}

func TestHandler_delete(t *testing.T) {
	service := new(mockDocumentService)
	handler := newTestHandler(service)

	service.On("Delete", mock.Anything, "u-1", "d-1").Return(nil)

	out, err := handler.delete(authedContext("u-1"), &deleteInput{ID: "d-1"})

	assert.NoError(t, err)
	assert.Equal(t, "OK", out.Body.Status)
}
