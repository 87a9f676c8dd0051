// Package services contains the client's application services: the session
// manager that owns authentication state, and the list synchronizer that
// reads and writes to-do lists in the remote document store.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/todosync/internal/client/client"
	"github.com/dmitrijs2005/todosync/internal/client/credcache"
	"github.com/dmitrijs2005/todosync/internal/client/models"
	"github.com/dmitrijs2005/todosync/internal/logging"
)

// ErrIncompleteIdentity is returned when the auth service answers without a
// usable user id.
var ErrIncompleteIdentity = errors.New("identity has no id")

// SessionManager tracks who is signed in.
//
// States: anonymous until Register, Login or ResumeFromCache succeeds;
// anonymous again after Logout or a failed Login. Login and ResumeFromCache
// never return errors; every failure collapses to "no user".
type SessionManager struct {
	auth   client.AuthClient
	cache  *credcache.Cache
	logger logging.Logger

	mu      sync.RWMutex
	current *models.User
}

func NewSessionManager(auth client.AuthClient, cache *credcache.Cache, logger logging.Logger) *SessionManager {
	return &SessionManager{
		auth:   auth,
		cache:  cache,
		logger: logger.With("module", "session"),
	}
}

// Register creates the identity, sets its display name and signs in with
// the same credentials. Whoever was signed in before is logged out first.
// Any step failing aborts registration, ends every session it opened and
// caches nothing.
func (s *SessionManager) Register(ctx context.Context, username, email, password string) (user *models.User, err error) {
	if s.Current() != nil {
		s.Logout(ctx)
	}

	identity, err := s.auth.CreateIdentity(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}
	defer func() {
		if err != nil {
			s.endRemoteSession(ctx)
		}
	}()
	if identity == nil || identity.UID == "" {
		return nil, fmt.Errorf("create identity: %w", ErrIncompleteIdentity)
	}

	if err := s.auth.SetDisplayName(ctx, identity, username); err != nil {
		return nil, fmt.Errorf("set display name: %w", err)
	}

	// the sign-up session is replaced by a regular login below
	s.endRemoteSession(ctx)

	identity, err = s.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login after register: %w", err)
	}
	if identity == nil || identity.UID == "" {
		return nil, fmt.Errorf("login after register: %w", ErrIncompleteIdentity)
	}

	user = userFromIdentity(identity)
	if user.Username == nil {
		user.Username = &username
	}

	s.cache.Save(ctx, email, password)
	s.setCurrent(user)
	s.logger.Info(ctx, "registered", "uid", user.ID)
	return user, nil
}

// Login authenticates and caches the credentials. A previous session is
// ended first. It returns nil on any failure, clears the cache and leaves
// no remote session open.
func (s *SessionManager) Login(ctx context.Context, email, password string) *models.User {
	if s.Current() != nil {
		s.endRemoteSession(ctx)
	}

	identity, err := s.auth.Authenticate(ctx, email, password)
	if err == nil && (identity == nil || identity.UID == "") {
		err = ErrIncompleteIdentity
	}
	if err != nil {
		s.logger.Info(ctx, "login failed", "error", err)
		s.endRemoteSession(ctx)
		s.cache.Clear(ctx)
		s.setCurrent(nil)
		return nil
	}

	user := userFromIdentity(identity)
	s.cache.Save(ctx, email, password)
	s.setCurrent(user)
	s.logger.Info(ctx, "logged in", "uid", user.ID)
	return user
}

// ResumeFromCache logs in with the cached credentials, if any. The cached
// pair is re-validated remotely.
func (s *SessionManager) ResumeFromCache(ctx context.Context) *models.User {
	creds, ok := s.cache.Load(ctx)
	if !ok {
		return nil
	}
	return s.Login(ctx, creds.Email, creds.Password)
}

// Logout signs out remotely on a best-effort basis and always clears local
// state.
func (s *SessionManager) Logout(ctx context.Context) {
	s.endRemoteSession(ctx)
	s.cache.Clear(ctx)
	s.setCurrent(nil)
}

// endRemoteSession signs out whatever session the auth client holds. Having
// none is fine.
func (s *SessionManager) endRemoteSession(ctx context.Context) {
	if err := s.auth.SignOut(ctx); err != nil && !errors.Is(err, client.ErrNoSession) {
		s.logger.Warn(ctx, "remote sign out failed", "error", err)
	}
}

// Current returns the signed-in user or nil.
func (s *SessionManager) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *SessionManager) setCurrent(u *models.User) {
	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
}

func userFromIdentity(identity *client.Identity) *models.User {
	return &models.User{
		ID:       identity.UID,
		Username: identity.DisplayName,
		Email:    identity.Email,
	}
}
