package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, id, email, passwordHash string) error {
	args := m.Called(ctx, id, email, passwordHash)
	return args.Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(id string) bool {
		return id != ""
	}), "user@example.com", mock.MatchedBy(func(hash string) bool {
		// The stored password must be a bcrypt hash, never the plaintext.
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("Passw0rd!")) == nil
	})).Return(nil)

	u, err := service.Register(context.Background(), "user@example.com", "Passw0rd!")
	assert.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "user@example.com", u.Email)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "Passw0rd!"},
		{"malformed email", "not-an-email", "Passw0rd!"},
		{"short password", "user@example.com", "Pw1!"},
		{"no uppercase", "user@example.com", "passw0rd!"},
		{"no lowercase", "user@example.com", "PASSW0RD!"},
		{"no digit", "user@example.com", "Password!"},
		{"no special", "user@example.com", "Passw0rdX"},
		{"contains space", "user@example.com", "Passw0rd! "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

			_, err := service.Register(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidInput)
			mockRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	mockRepo.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(ErrEmailTaken)

	_, err := service.Register(context.Background(), "user@example.com", "Passw0rd!")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Authenticate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	stored := User{ID: "u-1", Email: "user@example.com", Password: string(hash)}
	mockRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(stored, nil)

	u, err := service.Authenticate(context.Background(), "user@example.com", "Passw0rd!")
	assert.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	hash, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	stored := User{ID: "u-1", Email: "user@example.com", Password: string(hash)}
	mockRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(stored, nil)

	_, err := service.Authenticate(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidAuth)
}

func TestService_Authenticate_UnknownUser(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(User{}, errors.New("no rows"))

	_, err := service.Authenticate(context.Background(), "ghost@example.com", "Passw0rd!")
	assert.ErrorIs(t, err, ErrInvalidAuth)
}

func TestService_Authenticate_BadEmailShortCircuits(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	_, err := service.Authenticate(context.Background(), "not-an-email", "Passw0rd!")
	assert.ErrorIs(t, err, ErrInvalidAuth)
	mockRepo.AssertNotCalled(t, "FindByEmail")
}
