package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vmunix/reelfind/internal/state"
)

const defaultTokenTTL = time.Hour

// stateKey is the fixed namespace key the session envelope lives under.
const stateKey = "auth-storage"

// Failure messages. Unknown email and wrong password share one message
// so login responses can't be used to enumerate accounts.
const (
	msgInvalidCredentials = "invalid email or password"
	msgDuplicateAccount   = "an account with this email already exists"
	msgInternal           = "something went wrong, please try again"
)

// User is the session-visible identity, safe to serialize and return
// to clients.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Result is the structured outcome of a login or registration attempt.
// Credential failures are reported here, never as errors.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
}

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

// persistedState is the envelope written to the state store, matching
// the shape the web front end keeps in local storage.
type persistedState struct {
	State struct {
		User            *User  `json:"user"`
		IsAuthenticated bool   `json:"isAuthenticated"`
		Token           string `json:"token"`
	} `json:"state"`
}

// Manager owns the current session: it authenticates against an
// AccountStore, mints and validates tokens, and persists the session
// envelope across restarts.
type Manager struct {
	accounts AccountStore
	states   state.Store
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	log      *slog.Logger

	mu    sync.RWMutex
	user  *User
	token string
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithStateStore persists the session envelope to the given store and
// rehydrates from it on construction.
func WithStateStore(s state.Store) ManagerOption {
	return func(m *Manager) {
		m.states = s
	}
}

// WithTokenTTL sets the token validity window.
func WithTokenTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		m.tokenTTL = ttl
	}
}

// WithClock sets the time source used for minting and validation.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// WithLogger sets a logger for persistence warnings.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log.With("component", "session")
	}
}

// NewManager creates a session manager. If a state store is configured,
// the previous session is rehydrated immediately; an invalid or expired
// stored token leaves the manager logged out.
func NewManager(accounts AccountStore, secret []byte, opts ...ManagerOption) *Manager {
	m := &Manager{
		accounts: accounts,
		secret:   secret,
		tokenTTL: defaultTokenTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.rehydrate()
	return m
}

// Login authenticates an email/password pair. On success the session is
// set and persisted, and the result carries the user and a fresh token.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	account, err := m.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return failure(msgInvalidCredentials)
		}
		m.warn("account lookup failed", "error", err)
		return failure(msgInternal)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return failure(msgInvalidCredentials)
	}

	return m.startSession(ctx, account)
}

// Register creates an account and immediately logs the new user in.
// A case-insensitive duplicate email fails without touching the
// existing account.
func (m *Manager) Register(ctx context.Context, email, displayName, password string) Result {
	if FoldEmail(email) == "" || password == "" {
		return failure(msgInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		m.warn("password hashing failed", "error", err)
		return failure(msgInternal)
	}

	account := &Account{
		ID:           uuid.NewString(),
		Email:        FoldEmail(email),
		DisplayName:  displayName,
		PasswordHash: string(hash),
		CreatedAt:    m.now(),
	}

	if err := m.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return failure(msgDuplicateAccount)
		}
		m.warn("account creation failed", "error", err)
		return failure(msgInternal)
	}

	return m.startSession(ctx, account)
}

// startSession mints a token and installs the session. Persistence
// failures are logged but don't fail the login.
func (m *Manager) startSession(ctx context.Context, account *Account) Result {
	token, err := MintToken(account, m.secret, m.tokenTTL, m.now())
	if err != nil {
		m.warn("token minting failed", "error", err)
		return failure(msgInternal)
	}

	user := &User{
		ID:          account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
	}

	m.mu.Lock()
	m.user = user
	m.token = token
	m.mu.Unlock()

	m.persist(ctx)

	return Result{Success: true, User: user, Token: token}
}

// Logout clears the session unconditionally. Idempotent.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.mu.Unlock()

	m.persist(ctx)
}

// CheckAuth reports whether the held token is well-formed, correctly
// signed, and unexpired. A purely local decision: no server is
// contacted. Detecting an invalid token transitions to logged out.
func (m *Manager) CheckAuth(ctx context.Context) bool {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()

	if token == "" {
		return false
	}
	if _, err := ParseToken(token, m.secret, m.now); err != nil {
		m.Logout(ctx)
		return false
	}
	return true
}

// Validate checks an arbitrary bearer token and returns the identity it
// asserts. Used by the HTTP layer to authenticate requests.
func (m *Manager) Validate(token string) (*User, error) {
	claims, err := ParseToken(token, m.secret, m.now)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:          claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
	}, nil
}

// Current returns the logged-in user, or false when logged out.
func (m *Manager) Current() (*User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil, false
	}
	return m.user, true
}

// Token returns the current session token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// persist writes the session envelope on every mutation. Write failures
// degrade to a warning; the in-memory session stays authoritative.
func (m *Manager) persist(ctx context.Context) {
	if m.states == nil {
		return
	}

	m.mu.RLock()
	var env persistedState
	env.State.User = m.user
	env.State.IsAuthenticated = m.user != nil
	env.State.Token = m.token
	m.mu.RUnlock()

	data, err := json.Marshal(env)
	if err != nil {
		m.warn("marshal session state failed", "error", err)
		return
	}
	if err := m.states.Set(ctx, stateKey, data); err != nil {
		m.warn("persist session state failed", "error", err)
	}
}

// rehydrate restores a persisted session at construction time. Any
// storage or decode failure, and any invalid or expired token, degrades
// to logged out rather than surfacing an error.
func (m *Manager) rehydrate() {
	if m.states == nil {
		return
	}

	data, err := m.states.Get(context.Background(), stateKey)
	if err != nil {
		if !errors.Is(err, state.ErrNotFound) {
			m.warn("read session state failed", "error", err)
		}
		return
	}

	var env persistedState
	if err := json.Unmarshal(data, &env); err != nil {
		m.warn("decode session state failed", "error", err)
		return
	}

	if !env.State.IsAuthenticated || env.State.Token == "" {
		return
	}
	if _, err := ParseToken(env.State.Token, m.secret, m.now); err != nil {
		// Stored token no longer validates; start logged out.
		m.persist(context.Background())
		return
	}

	m.user = env.State.User
	m.token = env.State.Token
}

func (m *Manager) warn(msg string, args ...any) {
	if m.log != nil {
		m.log.Warn(msg, args...)
	}
}
