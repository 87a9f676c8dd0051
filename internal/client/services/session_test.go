package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/todosync/internal/client/client"
	"github.com/dmitrijs2005/todosync/internal/client/credcache"
	"github.com/dmitrijs2005/todosync/internal/client/models"
	"github.com/dmitrijs2005/todosync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/todosync/internal/client/storage"
	"github.com/dmitrijs2005/todosync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionEnv struct {
	auth    *fakeAuth
	cache   *credcache.Cache
	manager *SessionManager
}

func newSessionEnv(t *testing.T) *sessionEnv {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	auth := newFakeAuth()
	cache := credcache.New(metadata.NewSQLiteRepository(db), logging.Nop{})
	return &sessionEnv{
		auth:    auth,
		cache:   cache,
		manager: NewSessionManager(auth, cache, logging.Nop{}),
	}
}

func (e *sessionEnv) cached(t *testing.T) (models.Credentials, bool) {
	t.Helper()
	return e.cache.Load(context.Background())
}

func TestRegister_Succeeds_CachesCredentials(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	user, err := env.manager.Register(ctx, "alice", "a@x.com", "pw123456")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, user.ID)
	require.NotNil(t, user.Username)
	assert.Equal(t, "alice", *user.Username)
	require.NotNil(t, user.Email)
	assert.Equal(t, "a@x.com", *user.Email)
	assert.Equal(t, user, env.manager.Current())

	creds, ok := env.cached(t)
	require.True(t, ok)
	assert.Equal(t, models.Credentials{Email: "a@x.com", Password: "pw123456"}, creds)
}

func TestRegister_DuplicateEmail_Propagates(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	_, err := env.manager.Register(ctx, "alice", "a@x.com", "pw123456")
	require.NoError(t, err)
	env.cache.Clear(ctx)

	user, err := env.manager.Register(ctx, "alice2", "a@x.com", "other123")
	require.ErrorIs(t, err, client.ErrEmailInUse)
	assert.Nil(t, user)

	_, ok := env.cached(t)
	assert.False(t, ok)
}

func TestRegister_FailingStep_NothingCached(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name  string
		setup func(a *fakeAuth)
	}{
		{"create", func(a *fakeAuth) { a.CreateErr = boom }},
		{"display name", func(a *fakeAuth) { a.DisplayNameErr = boom }},
		{"login", func(a *fakeAuth) { a.AuthErr = boom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newSessionEnv(t)
			tt.setup(env.auth)

			user, err := env.manager.Register(context.Background(), "alice", "a@x.com", "pw123456")
			require.ErrorIs(t, err, boom)
			assert.Nil(t, user)
			assert.Nil(t, env.manager.Current())
			assert.False(t, env.auth.hasSession(), "no session survives a failed registration")

			_, ok := env.cached(t)
			assert.False(t, ok)
		})
	}
}

func TestRegister_LoginWithoutUID_Fails(t *testing.T) {
	env := newSessionEnv(t)
	env.auth.EmptyUID = true

	user, err := env.manager.Register(context.Background(), "alice", "a@x.com", "pw123456")
	require.ErrorIs(t, err, ErrIncompleteIdentity)
	assert.Nil(t, user)
	assert.False(t, env.auth.hasSession())
}

func TestRegister_EndsSignUpSession(t *testing.T) {
	env := newSessionEnv(t)

	_, err := env.manager.Register(context.Background(), "alice", "a@x.com", "pw123456")
	require.NoError(t, err)

	assert.Equal(t, 1, env.auth.SignOutCalls, "the sign-up session is signed out before logging in")
	assert.True(t, env.auth.hasSession())
}

func TestRegister_WhileSignedIn_LogsOutFirst(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	_, err := env.manager.Register(ctx, "alice", "a@x.com", "pw123456")
	require.NoError(t, err)
	before := env.auth.SignOutCalls

	_, err = env.manager.Register(ctx, "bob", "a@x.com", "pw654321")
	require.ErrorIs(t, err, client.ErrEmailInUse)

	assert.Equal(t, before+1, env.auth.SignOutCalls)
	assert.False(t, env.auth.hasSession())
	assert.Nil(t, env.manager.Current())
	_, ok := env.cached(t)
	assert.False(t, ok)
}

func TestLogin_WrongPassword_ReturnsNilAndClearsCache(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	_, err := env.manager.Register(ctx, "alice", "a@x.com", "pw123456")
	require.NoError(t, err)

	before := env.auth.SignOutCalls
	user := env.manager.Login(ctx, "a@x.com", "wrong")
	assert.Nil(t, user)
	assert.Nil(t, env.manager.Current())
	assert.Equal(t, before+1, env.auth.SignOutCalls, "alice's session is ended")
	assert.False(t, env.auth.hasSession())

	_, ok := env.cached(t)
	assert.False(t, ok)
}

func TestLogin_CollapsesFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(a *fakeAuth)
	}{
		{"network", func(a *fakeAuth) { a.AuthErr = client.ErrUnavailable }},
		{"empty uid", func(a *fakeAuth) { a.EmptyUID = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newSessionEnv(t)
			ctx := context.Background()

			_, err := env.manager.Register(ctx, "alice", "a@x.com", "pw123456")
			require.NoError(t, err)

			tt.setup(env.auth)
			assert.Nil(t, env.manager.Login(ctx, "a@x.com", "pw123456"))
			assert.False(t, env.auth.hasSession())

			_, ok := env.cached(t)
			assert.False(t, ok)
		})
	}
}

func TestLogin_Succeeds(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	_, err := env.manager.Register(ctx, "alice", "a@x.com", "pw123456")
	require.NoError(t, err)
	env.manager.Logout(ctx)

	user := env.manager.Login(ctx, "a@x.com", "pw123456")
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.DisplayName())

	creds, ok := env.cached(t)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", creds.Email)
}

func TestResumeFromCache_NoCache_ReturnsNil(t *testing.T) {
	env := newSessionEnv(t)

	assert.Nil(t, env.manager.ResumeFromCache(context.Background()))
	assert.Nil(t, env.manager.Current())
}

func TestResumeFromCache_RevalidatesRemotely(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	registered, err := env.manager.Register(ctx, "alice", "a@x.com", "pw123456")
	require.NoError(t, err)

	// new process: fresh manager over the same cache
	fresh := NewSessionManager(env.auth, env.cache, logging.Nop{})
	user := fresh.ResumeFromCache(ctx)
	require.NotNil(t, user)
	assert.Equal(t, registered.ID, user.ID)

	// the account's password changed remotely; the cache must not be trusted
	env.auth.accounts["a@x.com"].password = "rotated1"
	assert.Nil(t, fresh.ResumeFromCache(ctx))

	_, ok := env.cached(t)
	assert.False(t, ok)
}

func TestLogout_RemoteFailure_StillClears(t *testing.T) {
	env := newSessionEnv(t)
	ctx := context.Background()

	_, err := env.manager.Register(ctx, "alice", "a@x.com", "pw123456")
	require.NoError(t, err)

	env.auth.SignOutErr = client.ErrUnavailable
	before := env.auth.SignOutCalls
	env.manager.Logout(ctx)

	assert.Equal(t, before+1, env.auth.SignOutCalls)
	assert.Nil(t, env.manager.Current())
	_, ok := env.cached(t)
	assert.False(t, ok)
}
