// Package services contains server-side business logic. UserService owns
// accounts and sessions; DocumentService owns the per-user document store.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/todosync/internal/common"
	"github.com/dmitrijs2005/todosync/internal/server/auth"
	"github.com/dmitrijs2005/todosync/internal/server/config"
	"github.com/dmitrijs2005/todosync/internal/server/models"
	"github.com/dmitrijs2005/todosync/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult is a freshly opened session.
type AuthResult struct {
	User        *models.User
	SessionID   string
	AccessToken string
	ExpiresAt   time.Time
}

// SessionInfo identifies the caller behind a valid access token.
type SessionInfo struct {
	UserID    string
	SessionID string
}

type UserService struct {
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  bcrypt.DefaultCost,
	}
}

// CreateIdentity registers a new account and opens a session for it.
func (s *UserService) CreateIdentity(ctx context.Context, email, password string) (*AuthResult, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(password) < common.MinPasswordLength {
		return nil, common.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, common.ErrWeakPassword
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var result *AuthResult
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		user, err := repos.Users().Create(ctx, &models.User{Email: email, PasswordHash: hash})
		if err != nil {
			return err
		}
		result, err = s.openSession(ctx, repos, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Authenticate checks the password and opens a session. Unknown accounts
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.openSession(ctx, s.repomanager, user)
}

// SetDisplayName updates uid's display name. Callers may only rename
// themselves.
func (s *UserService) SetDisplayName(ctx context.Context, callerID, uid, name string) (*models.User, error) {
	if callerID != uid {
		return nil, common.ErrPermissionDenied
	}
	repo := s.repomanager.Users()
	if err := repo.SetDisplayName(ctx, uid, name); err != nil {
		return nil, fmt.Errorf("set display name: %w", err)
	}
	return repo.GetByID(ctx, uid)
}

// SignOut revokes the session. Unknown sessions are ignored.
func (s *UserService) SignOut(ctx context.Context, sessionID string) error {
	return s.repomanager.Sessions().Delete(ctx, sessionID)
}

// ResolveSession verifies an access token and checks that its session is
// still open.
func (s *UserService) ResolveSession(ctx context.Context, token string) (*SessionInfo, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	session, err := s.repomanager.Sessions().Find(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session.UserID != claims.UserID {
		return nil, common.ErrInvalidToken
	}
	if session.Expired(time.Now()) {
		return nil, common.ErrTokenExpired
	}

	return &SessionInfo{UserID: session.UserID, SessionID: session.ID}, nil
}

// PurgeExpiredSessions drops sessions whose tokens can no longer be used.
func (s *UserService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.repomanager.Sessions().DeleteExpired(ctx, time.Now())
}

func (s *UserService) openSession(ctx context.Context, repos repomanager.Repositories, user *models.User) (*AuthResult, error) {
	session, err := repos.Sessions().Create(ctx, user.ID, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, expiresAt, err := auth.GenerateToken(user.ID, session.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{User: user, SessionID: session.ID, AccessToken: token, ExpiresAt: expiresAt}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", common.ErrInvalidEmail
	}
	return email, nil
}
