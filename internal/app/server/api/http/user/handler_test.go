package user

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/user"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, email, password string) (user.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (user.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(user.User), args.Error(1)
}

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) Create(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockSessionService) Validate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func newTestHandler(users *mockUserService, sessions *mockSessionService) *Handler {
	return NewHandler(users, sessions, slog.Default(), huma.Middlewares{})
}

func TestHandler_register(t *testing.T) {
	users := new(mockUserService)
	sessions := new(mockSessionService)
	handler := newTestHandler(users, sessions)

	users.On("Register", mock.Anything, "user@example.com", "Passw0rd!").
		Return(user.User{ID: "u-1", Email: "user@example.com"}, nil)
	sessions.On("Create", mock.Anything, "u-1").Return("tok-abc", nil)

	out, err := handler.register(context.Background(), &registerInput{
		Body: credentialsRequest{Email: "user@example.com", Password: "Passw0rd!"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "tok-abc", out.Body.Token)
	assert.Equal(t, "u-1", out.Body.UserID)
}

func TestHandler_register_InvalidInput(t *testing.T) {
	users := new(mockUserService)
	sessions := new(mockSessionService)
	handler := newTestHandler(users, sessions)

	users.On("Register", mock.Anything, "user@example.com", "weak").
		Return(user.User{}, user.ErrInvalidInput)

	_, err := handler.register(context.Background(), &registerInput{
		Body: credentialsRequest{Email: "user@example.com", Password: "weak"},
	})

	assert.Error(t, err)
	statusErr, ok := err.(huma.StatusError)
	assert.True(t, ok)
	assert.Equal(t, 400, statusErr.GetStatus())
	sessions.AssertNotCalled(t, "Create")
}

func TestHandler_register_EmailTaken(t *testing.T) {
	users := new(mockUserService)
	sessions := new(mockSessionService)
	handler := newTestHandler(users, sessions)

	users.On("Register", mock.Anything, "user@example.com", "Passw0rd!").
		Return(user.User{}, user.ErrEmailTaken)

	_, err := handler.register(context.Background(), &registerInput{
		Body: credentialsRequest{Email: "user@example.com", Password: "Passw0rd!"},
	})

	statusErr, ok := err.(huma.StatusError)
	assert.True(t, ok)
	assert.Equal(t, 409, statusErr.GetStatus())
}

func TestHandler_login(t *testing.T) {
	users := new(mockUserService)
	sessions := new(mockSessionService)
	handler := newTestHandler(users, sessions)

	users.On("Authenticate", mock.Anything, "user@example.com", "Passw0rd!").
		Return(user.User{ID: "u-1"}, nil)
	sessions.On("Create", mock.Anything, "u-1").Return("tok-xyz", nil)

	out, err := handler.login(context.Background(), &loginInput{
		Body: credentialsRequest{Email: "user@example.com", Password: "Passw0rd!"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "tok-xyz", out.Body.Token)
	assert.Equal(t, "u-1", out.Body.UserID)
}

func TestHandler_login_InvalidCredentials(t *testing.T) {
	users := new(mockUserService)
	sessions := new(mockSessionService)
	handler := newTestHandler(users, sessions)

	users.On("Authenticate", mock.Anything, "user@example.com", "wrong").
		Return(user.User{}, user.ErrInvalidAuth)

	_, err := handler.login(context.Background(), &loginInput{
		Body: credentialsRequest{Email: "user@example.com", Password: "wrong"},
	})

	statusErr, ok := err.(huma.StatusError)
	assert.True(t, ok)
	assert.Equal(t, 401, statusErr.GetStatus())
	sessions.AssertNotCalled(t, "Create")
}
