package flow

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ErrValidation marks a client-side input rejection. Checks run in a
// fixed order and the first violated rule wins; nothing reaches the
// network while any rule fails.
var ErrValidation = errors.New("validation failed")

const minPasswordLen = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func violation(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// ValidateSignIn checks the sign-in inputs in order.
func ValidateSignIn(email, password string) error {
	switch {
	case email == "":
		return violation("please enter an email address")
	case !emailPattern.MatchString(email):
		return violation("please enter a valid email address")
	case password == "":
		return violation("please enter a password")
	}
	return nil
}

// ValidateCreateAccount checks the account-creation inputs in order.
func ValidateCreateAccount(email, password, confirm string) error {
	switch {
	case email == "":
		return violation("please enter an email address")
	case !emailPattern.MatchString(email):
		return violation("please enter a valid email address")
	case password == "":
		return violation("please enter a password")
	case len(password) < minPasswordLen:
		return violation(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	case !containsFunc(password, unicode.IsUpper):
		return violation("password must contain at least one uppercase letter")
	case !containsFunc(password, unicode.IsLower):
		return violation("password must contain at least one lowercase letter")
	case !containsFunc(password, unicode.IsDigit):
		return violation("password must contain at least one digit")
	case !containsFunc(password, isSpecial):
		return violation("password must contain at least one special character")
	case strings.Contains(password, " "):
		return violation("password must not contain spaces")
	case confirm == "":
		return violation("please confirm your password")
	case password != confirm:
		return violation("passwords do not match")
	}
	return nil
}

func containsFunc(s string, f func(rune) bool) bool {
	for _, r := range s {
		if f(r) {
			return true
		}
	}
	return false
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
