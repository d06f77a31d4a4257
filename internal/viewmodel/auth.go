package viewmodel

import (
	"context"
	"errors"
	"strings"
	"sync"

	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/session"
)

// ErrMissingCredentials is the local validation failure for the auth forms.
var ErrMissingCredentials = errors.New("all required fields must be filled in")

// AuthState is the authentication flow state.
type AuthState int

const (
	StateAnonymous AuthState = iota
	StateAuthenticating
	StateAuthenticated
)

// AuthBackend is the slice of the API client the auth flow needs.
type AuthBackend interface {
	Login(ctx context.Context, creds model.Credentials) (model.LoginResult, error)
	Signup(ctx context.Context, draft model.SignupDraft) error
}

// Authenticator drives anonymous → authenticating → authenticated and back.
// A successful login persists the session; a failure leaves it untouched.
type Authenticator struct {
	api     AuthBackend
	session session.Store

	mu    sync.Mutex
	state AuthState
	err   string
}

// NewAuthenticator returns an authenticator whose initial state reflects the
// persisted session.
func NewAuthenticator(api AuthBackend, st session.Store) *Authenticator {
	a := &Authenticator{api: api, session: st, state: StateAnonymous}
	if _, ok := st.Current(); ok {
		a.state = StateAuthenticated
	}
	return a
}

// State returns the current flow state.
func (a *Authenticator) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Err returns the last auth error message.
func (a *Authenticator) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// CurrentUser returns the persisted username, if any.
func (a *Authenticator) CurrentUser() (string, bool) {
	s, ok := a.session.Current()
	if !ok {
		return "", false
	}
	return s.Username, true
}

// Login exchanges credentials for a token and persists token + username
// together. On any failure nothing is stored.
func (a *Authenticator) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return a.fail(StateAnonymous, ErrMissingCredentials)
	}

	a.mu.Lock()
	if a.state == StateAuthenticating {
		a.mu.Unlock()
		return ErrBusy
	}
	a.state = StateAuthenticating
	a.mu.Unlock()

	res, err := a.api.Login(ctx, model.Credentials{Email: email, Password: password})
	if err != nil {
		return a.fail(StateAnonymous, err)
	}
	if err := a.session.Set(session.Session{Token: res.AccessToken, Username: res.Username}); err != nil {
		return a.fail(StateAnonymous, err)
	}

	a.mu.Lock()
	a.state = StateAuthenticated
	a.err = ""
	a.mu.Unlock()
	return nil
}

// Signup registers a new user. It never logs the user in; after success the
// user logs in separately.
func (a *Authenticator) Signup(ctx context.Context, draft model.SignupDraft) error {
	if strings.TrimSpace(draft.Username) == "" ||
		strings.TrimSpace(draft.Email) == "" ||
		draft.Password == "" {
		return a.fail(a.State(), ErrMissingCredentials)
	}
	if err := a.api.Signup(ctx, draft); err != nil {
		return a.fail(a.State(), err)
	}
	a.mu.Lock()
	a.err = ""
	a.mu.Unlock()
	return nil
}

// Logout clears both persisted values together and returns to anonymous.
func (a *Authenticator) Logout() error {
	if err := a.session.Clear(); err != nil {
		return a.fail(a.State(), err)
	}
	a.mu.Lock()
	a.state = StateAnonymous
	a.err = ""
	a.mu.Unlock()
	return nil
}

func (a *Authenticator) fail(state AuthState, err error) error {
	a.mu.Lock()
	a.state = state
	a.err = err.Error()
	a.mu.Unlock()
	return err
}
