package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCreateAccountOrder(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		confirm  string
		wantMsg  string
	}{
		{"empty email", "", "x", "x", "please enter an email address"},
		{"invalid email", "nope", "x", "x", "please enter a valid email address"},
		{"empty password", "a@b.com", "", "", "please enter a password"},
		{"short password", "a@b.com", "Ab1!", "Ab1!", "password must be at least 8 characters"},
		{"no uppercase", "a@b.com", "weak1pass!", "weak1pass!", "at least one uppercase"},
		{"no lowercase", "a@b.com", "WEAK1PASS!", "WEAK1PASS!", "at least one lowercase"},
		{"no digit", "a@b.com", "WeakPass!", "WeakPass!", "at least one digit"},
		{"no special", "a@b.com", "WeakPass1", "WeakPass1", "at least one special"},
		{"contains space", "a@b.com", "Weak Pass1!", "Weak Pass1!", "must not contain spaces"},
		{"empty confirm", "a@b.com", "Str0ng!pass", "", "please confirm your password"},
		{"mismatch", "a@b.com", "Str0ng!pass", "Str0ng!pas", "passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateAccount(tt.email, tt.password, tt.confirm)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateCreateAccountFirstViolationWins(t *testing.T) {
	// everything is wrong; only the email rule may be reported
	err := ValidateCreateAccount("", "x", "y")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "email address")
	assert.NotContains(t, err.Error(), "password")
}

func TestValidateCreateAccountAccepts(t *testing.T) {
	assert.NoError(t, ValidateCreateAccount("alice@example.com", "Str0ng!pass", "Str0ng!pass"))
}

func TestValidateSignIn(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"empty email", "", "pw", true},
		{"invalid email", "not an email", "pw", true},
		{"empty password", "a@b.com", "", true},
		{"ok", "a@b.com", "pw", false},
		// sign-in does not re-apply the strength rules; existing accounts
		// may predate them
		{"weak password ok on sign in", "a@b.com", "123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignIn(tt.email, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
