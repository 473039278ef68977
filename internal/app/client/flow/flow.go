// Package flow sequences account authentication, the device-unlock gate
// and page navigation. Vault data may only be rendered from the Unlocked
// page; an account session alone is never enough.
package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// Page is the current navigation state. All session flags live on the
// Machine, owned by one controller; there are no ambient globals.
type Page int

const (
	PageHome Page = iota
	PageCreateAccount
	PageSignIn
	PageLocked // account session exists, device unlock for this launch pending
	PageUnlocked
	PageHelp
	PageSettings
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageCreateAccount:
		return "create-account"
	case PageSignIn:
		return "sign-in"
	case PageLocked:
		return "locked"
	case PageUnlocked:
		return "unlocked"
	case PageHelp:
		return "help"
	case PageSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// UnlockOutcome is the device-unlock collaborator's verdict. Failed means
// the user did not pass the check; Error means the unlock subsystem
// itself broke.
type UnlockOutcome int

const (
	UnlockSuccess UnlockOutcome = iota
	UnlockFailed
	UnlockError
)

// Unlocker is the biometric/device-credential prompt.
type Unlocker interface {
	Prompt() (UnlockOutcome, string)
}

// Session identifies an authenticated account.
type Session struct {
	Token  string
	UserID string
	Email  string
}

// Authenticator performs the remote account calls.
type Authenticator interface {
	Register(ctx context.Context, email, password string) (Session, error)
	Login(ctx context.Context, email, password string) (Session, error)
}

// BackAction tells the caller what a back gesture did.
type BackAction int

const (
	BackNone BackAction = iota // navigation handled internally
	BackWarn                   // exit timer armed, warn the user
	BackExit                   // terminate the app
)

// backWindow is how long the second back press has to arrive.
const backWindow = 2 * time.Second

var (
	// ErrAuth wraps a remote rejection of sign-in or account creation.
	ErrAuth = errors.New("authentication failed")

	// ErrInvalidTransition is returned for a navigation request that the
	// current page does not allow.
	ErrInvalidTransition = errors.New("invalid transition")
)

// Machine owns the navigation and session state.
type Machine struct {
	auth     Authenticator
	unlocker Unlocker
	log      *slog.Logger
	now      func() time.Time

	page        Page
	session     *Session
	newUser     bool
	unlocked    bool
	backArmedAt time.Time // zero value means disarmed
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock replaces the wall clock, for tests of the back-press window.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

func NewMachine(auth Authenticator, unlocker Unlocker, log *slog.Logger, opts ...Option) *Machine {
	m := &Machine{
		auth:     auth,
		unlocker: unlocker,
		log:      log.With("component", "flow"),
		now:      time.Now,
		page:     PageHome,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resume restores an account session found on disk at startup. The vault
// stays locked until the device check passes for this launch.
func (m *Machine) Resume(session Session) {
	m.session = &session
	m.page = PageLocked
}

func (m *Machine) Page() Page          { return m.page }
func (m *Machine) Unlocked() bool      { return m.unlocked }
func (m *Machine) NewUser() bool       { return m.newUser }
func (m *Machine) Session() *Session   { return m.session }
func (m *Machine) Authenticated() bool { return m.session != nil }

// OpenCreateAccount navigates Home -> CreateAccount.
func (m *Machine) OpenCreateAccount() error {
	if m.page != PageHome {
		return fmt.Errorf("%w: %s -> create-account", ErrInvalidTransition, m.page)
	}
	m.page = PageCreateAccount
	return nil
}

// OpenSignIn navigates Home -> SignIn.
func (m *Machine) OpenSignIn() error {
	if m.page != PageHome {
		return fmt.Errorf("%w: %s -> sign-in", ErrInvalidTransition, m.page)
	}
	m.page = PageSignIn
	return nil
}

// CreateAccount validates the inputs in order, then registers remotely.
// Success lands in Locked with the new-user flag set; the device unlock
// still stands between the account and the vault.
func (m *Machine) CreateAccount(ctx context.Context, email, password, confirm string) error {
	if err := ValidateCreateAccount(email, password, confirm); err != nil {
		return err
	}

	session, err := m.auth.Register(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}

	m.session = &session
	m.newUser = true
	m.unlocked = false
	m.page = PageLocked
	m.log.Info("account created", "email", email)
	return nil
}

// SignIn validates the inputs in order, then authenticates remotely.
// Success always lands in Locked, never directly in Unlocked.
func (m *Machine) SignIn(ctx context.Context, email, password string) error {
	if err := ValidateSignIn(email, password); err != nil {
		return err
	}

	session, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}

	m.session = &session
	m.newUser = false
	m.unlocked = false
	m.page = PageLocked
	m.log.Info("signed in", "email", email)
	return nil
}

// Unlock runs the device-unlock prompt. Success opens the vault; Failed
// keeps the machine in Locked so the prompt can be re-offered; Error
// additionally forces a logout when a session exists, so the app never
// idles in an ambiguous locked state after a hard unlock error.
func (m *Machine) Unlock() (UnlockOutcome, string, error) {
	if m.page != PageLocked {
		return UnlockFailed, "", fmt.Errorf("%w: unlock from %s", ErrInvalidTransition, m.page)
	}

	outcome, message := m.unlocker.Prompt()
	switch outcome {
	case UnlockSuccess:
		m.unlocked = true
		m.page = PageUnlocked
	case UnlockFailed:
		m.log.Debug("device unlock failed")
	case UnlockError:
		m.log.Warn("device unlock error", "message", message)
		if m.session != nil {
			m.Logout()
		}
	}
	return outcome, message, nil
}

// Logout clears the session, the unlock flag and the new-user flag, and
// returns to Home.
func (m *Machine) Logout() {
	m.session = nil
	m.newUser = false
	m.unlocked = false
	m.backArmedAt = time.Time{}
	m.page = PageHome
}

// OpenHelp navigates Unlocked -> Help.
func (m *Machine) OpenHelp() error {
	if m.page != PageUnlocked {
		return fmt.Errorf("%w: %s -> help", ErrInvalidTransition, m.page)
	}
	m.page = PageHelp
	return nil
}

// OpenSettings navigates Unlocked -> Settings.
func (m *Machine) OpenSettings() error {
	if m.page != PageUnlocked {
		return fmt.Errorf("%w: %s -> settings", ErrInvalidTransition, m.page)
	}
	m.page = PageSettings
	return nil
}

// Back handles the system back gesture for the current page.
//
// On Home and Unlocked the first press arms a 2-second window and returns
// BackWarn; a second press inside the window returns BackExit, signing
// out first when a session exists. A press after the window re-arms.
// CreateAccount and SignIn return to Home, Help and Settings return to
// Unlocked, Locked signs out.
func (m *Machine) Back() BackAction {
	switch m.page {
	case PageHome, PageUnlocked:
		now := m.now()
		if !m.backArmedAt.IsZero() && now.Sub(m.backArmedAt) <= backWindow {
			if m.Authenticated() {
				m.Logout()
			}
			return BackExit
		}
		m.backArmedAt = now
		return BackWarn
	case PageCreateAccount, PageSignIn:
		m.page = PageHome
		m.backArmedAt = time.Time{}
		return BackNone
	case PageHelp, PageSettings:
		m.page = PageUnlocked
		m.backArmedAt = time.Time{}
		return BackNone
	case PageLocked:
		m.Logout()
		return BackNone
	default:
		return BackNone
	}
}
