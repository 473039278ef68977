// Package client assembles the vault client: key store, cipher,
// remote document store, repository, persistent state and the page flow.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"credvault/internal/app/client/config"
	"credvault/internal/app/client/devicelock"
	"credvault/internal/app/client/flow"
	"credvault/internal/app/client/keystore"
	"credvault/internal/app/client/passapi"
	"credvault/internal/app/client/remote"
	"credvault/internal/app/client/repository"
	"credvault/internal/app/client/statestore"
	"credvault/internal/app/client/vaultcrypt"
	"credvault/internal/app/client/vaultview"
)

// ErrLocked is returned when a vault operation is attempted before the
// device unlock for this launch.
var ErrLocked = errors.New("vault is locked")

type App struct {
	config  *config.Config
	log     *slog.Logger
	remote  *remote.Client
	repo    *repository.Repository
	state   *statestore.Store
	passAPI *passapi.Client
	flow    *flow.Machine
	view    *vaultview.View
}

// remoteAuth adapts the remote client to the flow.Authenticator
// interface.
type remoteAuth struct {
	remote *remote.Client
}

func (a remoteAuth) Register(ctx context.Context, email, password string) (flow.Session, error) {
	token, userID, err := a.remote.Register(ctx, email, password)
	if err != nil {
		return flow.Session{}, err
	}
	a.remote.SetToken(token)
	return flow.Session{Token: token, UserID: userID, Email: email}, nil
}

func (a remoteAuth) Login(ctx context.Context, email, password string) (flow.Session, error) {
	token, userID, err := a.remote.Login(ctx, email, password)
	if err != nil {
		return flow.Session{}, err
	}
	a.remote.SetToken(token)
	return flow.Session{Token: token, UserID: userID, Email: email}, nil
}

// promptUnlocker adapts the device-lock prompt to the flow.Unlocker
// interface.
type promptUnlocker struct {
	prompt *devicelock.Prompt
}

func (u promptUnlocker) Prompt() (flow.UnlockOutcome, string) {
	outcome, message := u.prompt.Show()
	switch outcome {
	case devicelock.Success:
		return flow.UnlockSuccess, message
	case devicelock.Failed:
		return flow.UnlockFailed, message
	default:
		return flow.UnlockError, message
	}
}

// New wires the client from configuration. A saved session is resumed
// into the locked state; the vault opens only after the device unlock.
func New(cfg *config.Config, log *slog.Logger, readPassphrase devicelock.PassphraseReader) (*App, error) {
	keys, err := keystore.New(cfg.KeyStoreDir)
	if err != nil {
		return nil, fmt.Errorf("open key store: %w", err)
	}

	key, err := keys.GetOrCreate(keystore.DefaultAlias)
	if err != nil {
		return nil, fmt.Errorf("obtain encryption key: %w", err)
	}

	cipher, err := vaultcrypt.New(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	state, err := statestore.New(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	remoteClient := remote.New(cfg, log)
	repo := repository.New(remoteClient, cipher, log)
	unlocker := promptUnlocker{prompt: devicelock.NewPrompt(state, readPassphrase)}
	machine := flow.NewMachine(remoteAuth{remote: remoteClient}, unlocker, log)

	app := &App{
		config:  cfg,
		log:     log.With("component", "client"),
		remote:  remoteClient,
		repo:    repo,
		state:   state,
		passAPI: passapi.New(cfg.PassAPIURL),
		flow:    machine,
	}

	if session, err := state.LoadSession(); err == nil {
		remoteClient.SetToken(session.Token)
		machine.Resume(session)
		app.log.Debug("session resumed", "email", session.Email)
	} else if !errors.Is(err, statestore.ErrNoSession) {
		app.log.Warn("failed to load saved session", "error", err)
	}

	return app, nil
}

func (a *App) Flow() *flow.Machine      { return a.flow }
func (a *App) PassAPI() *passapi.Client { return a.passAPI }

// View returns the vault view. It exists only while the flow machine is
// on the unlocked side of the device gate.
func (a *App) View() (*vaultview.View, error) {
	if a.view == nil || !a.flow.Unlocked() {
		return nil, ErrLocked
	}
	return a.view, nil
}

// CreateAccount registers a new account and persists the session. The
// vault stays locked until Unlock passes.
func (a *App) CreateAccount(ctx context.Context, email, password, confirm string) error {
	if err := a.flow.CreateAccount(ctx, email, password, confirm); err != nil {
		return err
	}
	return a.persistSession()
}

// SignIn authenticates an existing account and persists the session.
func (a *App) SignIn(ctx context.Context, email, password string) error {
	if err := a.flow.SignIn(ctx, email, password); err != nil {
		return err
	}
	return a.persistSession()
}

func (a *App) persistSession() error {
	session := a.flow.Session()
	if session == nil {
		return nil
	}
	if err := a.state.SaveSession(*session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// EnrollDeviceLock sets the device passphrase used by the unlock gate.
func (a *App) EnrollDeviceLock(passphrase string) error {
	verifier, err := devicelock.Enroll(passphrase)
	if err != nil {
		return fmt.Errorf("enroll device lock: %w", err)
	}
	if err := a.state.SaveVerifier(verifier); err != nil {
		return fmt.Errorf("save device lock: %w", err)
	}
	return nil
}

// DeviceLockEnrolled reports whether a device passphrase exists.
func (a *App) DeviceLockEnrolled() bool {
	enrolled, err := a.state.Enrolled()
	if err != nil {
		a.log.Warn("failed to check device lock enrollment", "error", err)
		return false
	}
	return enrolled
}

// Unlock runs the device-unlock prompt and, on success, opens the vault
// view with a fresh load from the server.
func (a *App) Unlock(ctx context.Context) (flow.UnlockOutcome, string, error) {
	outcome, message, err := a.flow.Unlock()
	if err != nil {
		return outcome, message, err
	}

	switch outcome {
	case flow.UnlockSuccess:
		session := a.flow.Session()
		a.view = vaultview.New(a.repo, session.UserID, a.log)
		if err := a.view.Reload(ctx); err != nil {
			a.log.Warn("initial vault load failed", "error", err)
		}
	case flow.UnlockError:
		// The flow machine already forced a logout; drop local state too.
		if err := a.state.ClearSession(); err != nil {
			a.log.Warn("failed to clear session", "error", err)
		}
		a.view = nil
	}

	return outcome, message, nil
}

// Logout signs out, clears the persisted session and closes the vault
// view.
func (a *App) Logout() error {
	a.flow.Logout()
	a.remote.SetToken("")
	a.view = nil

	if err := a.state.ClearSession(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CheckConnection verifies the server is reachable.
func (a *App) CheckConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return a.remote.Health(ctx)
}

func (a *App) Close() error {
	return a.state.Close()
}
