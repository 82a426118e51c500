package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/reelfind/internal/state"
)

func newTestManager(t *testing.T, opts ...ManagerOption) *Manager {
	t.Helper()
	return NewManager(NewMemoryStore(0), []byte("test-secret"), opts...)
}

func TestManager_RegisterAndLogin(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	res := m.Register(ctx, "new@x.com", "New User", "pw1")
	require.True(t, res.Success, "registration should succeed: %s", res.Message)
	require.NotNil(t, res.User)
	assert.Equal(t, "new@x.com", res.User.Email)
	assert.NotEmpty(t, res.Token)
	assert.True(t, m.CheckAuth(ctx), "register should auto-login")

	m.Logout(ctx)
	assert.False(t, m.CheckAuth(ctx))

	res = m.Login(ctx, "new@x.com", "pw1")
	require.True(t, res.Success)
	assert.True(t, m.CheckAuth(ctx))
}

func TestManager_Login_CaseInsensitiveEmail(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.True(t, m.Register(ctx, "New@X.COM", "New User", "pw1").Success)
	m.Logout(ctx)

	res := m.Login(ctx, "new@x.com", "pw1")
	assert.True(t, res.Success, "email lookup should be case-insensitive")
}

func TestManager_Login_NoEnumerationLeak(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.True(t, m.Register(ctx, "new@x.com", "New User", "pw1").Success)
	m.Logout(ctx)

	wrongPassword := m.Login(ctx, "new@x.com", "wrong")
	unknownEmail := m.Login(ctx, "nobody@x.com", "anything")

	assert.False(t, wrongPassword.Success)
	assert.False(t, unknownEmail.Success)
	assert.Equal(t, wrongPassword.Message, unknownEmail.Message,
		"wrong password and unknown email must be indistinguishable")
	assert.False(t, m.CheckAuth(ctx))
}

func TestManager_Register_Duplicate(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.True(t, m.Register(ctx, "new@x.com", "First", "pw1").Success)
	m.Logout(ctx)

	res := m.Register(ctx, "NEW@x.com", "Second", "pw2")
	assert.False(t, res.Success, "duplicate case-insensitive email must fail")
	assert.NotEmpty(t, res.Message)

	// The existing account's password must be untouched.
	assert.True(t, m.Login(ctx, "new@x.com", "pw1").Success)
	m.Logout(ctx)
	assert.False(t, m.Login(ctx, "new@x.com", "pw2").Success)
}

func TestManager_Logout_Idempotent(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	m.Logout(ctx)
	m.Logout(ctx)
	assert.False(t, m.CheckAuth(ctx))

	require.True(t, m.Register(ctx, "new@x.com", "New User", "pw1").Success)
	m.Logout(ctx)
	m.Logout(ctx)
	assert.False(t, m.CheckAuth(ctx))
	_, ok := m.Current()
	assert.False(t, ok)
}

func TestManager_CheckAuth_Expiry(t *testing.T) {
	current := time.Now()
	clock := func() time.Time { return current }

	m := newTestManager(t, WithTokenTTL(time.Hour), WithClock(clock))
	ctx := context.Background()

	require.True(t, m.Register(ctx, "new@x.com", "New User", "pw1").Success)
	assert.True(t, m.CheckAuth(ctx))

	// Advance past exp: the session transitions to logged out.
	current = current.Add(time.Hour + time.Minute)
	assert.False(t, m.CheckAuth(ctx))
	assert.Empty(t, m.Token())
}

func TestManager_Rehydrate(t *testing.T) {
	states := state.NewMemory()
	ctx := context.Background()
	accounts := NewMemoryStore(0)
	secret := []byte("test-secret")

	m := NewManager(accounts, secret, WithStateStore(states))
	require.True(t, m.Register(ctx, "new@x.com", "New User", "pw1").Success)
	token := m.Token()

	// A fresh manager over the same state store picks the session up.
	m2 := NewManager(accounts, secret, WithStateStore(states))
	assert.True(t, m2.CheckAuth(ctx))
	assert.Equal(t, token, m2.Token())
	user, ok := m2.Current()
	require.True(t, ok)
	assert.Equal(t, "new@x.com", user.Email)
}

func TestManager_Rehydrate_ExpiredToken(t *testing.T) {
	states := state.NewMemory()
	ctx := context.Background()
	accounts := NewMemoryStore(0)
	secret := []byte("test-secret")

	past := time.Now().Add(-2 * time.Hour)
	m := NewManager(accounts, secret,
		WithStateStore(states),
		WithTokenTTL(time.Hour),
		WithClock(func() time.Time { return past }),
	)
	require.True(t, m.Register(ctx, "new@x.com", "New User", "pw1").Success)

	// Rehydrating with a real clock finds the stored token expired.
	m2 := NewManager(accounts, secret, WithStateStore(states))
	assert.False(t, m2.CheckAuth(ctx))
	_, ok := m2.Current()
	assert.False(t, ok)
}

func TestManager_Rehydrate_CorruptState(t *testing.T) {
	states := state.NewMemory()
	require.NoError(t, states.Set(context.Background(), "auth-storage", []byte(`{not json`)))

	m := NewManager(NewMemoryStore(0), []byte("test-secret"), WithStateStore(states))
	assert.False(t, m.CheckAuth(context.Background()),
		"corrupt persisted state degrades to logged out")
}

func TestManager_Validate(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	res := m.Register(ctx, "new@x.com", "New User", "pw1")
	require.True(t, res.Success)

	user, err := m.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, user.ID)
	assert.Equal(t, "new@x.com", user.Email)

	_, err = m.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_EndToEnd(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	// Register succeeds and auto-logs-in.
	require.True(t, m.Register(ctx, "new@x.com", "New User", "pw1").Success)
	assert.True(t, m.CheckAuth(ctx))

	// Logout: checkAuth false.
	m.Logout(ctx)
	assert.False(t, m.CheckAuth(ctx))

	// Login with the right password succeeds.
	assert.True(t, m.Login(ctx, "new@x.com", "pw1").Success)
	m.Logout(ctx)

	// Wrong password fails with the same message as a nonexistent email.
	wrong := m.Login(ctx, "new@x.com", "wrong")
	missing := m.Login(ctx, "missing@x.com", "pw1")
	assert.False(t, wrong.Success)
	assert.Equal(t, wrong.Message, missing.Message)
}

func TestMemoryStore_Delay(t *testing.T) {
	s := NewMemoryStore(20 * time.Millisecond)

	start := time.Now()
	_, err := s.GetByEmail(context.Background(), "new@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestMemoryStore_Delay_ContextCanceled(t *testing.T) {
	s := NewMemoryStore(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.GetByEmail(ctx, "new@x.com")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
