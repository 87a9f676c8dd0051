// Package credcache keeps the email/password pair of the last successful
// login in the local metadata store so a session can be resumed silently.
//
// The cache holds both values or neither. Writes are independent, so a
// failure can leave one key behind; Load treats that as absent and purges
// the leftover.
//
// The password is stored in plain text to stay compatible with existing
// installs. Exchanging it for a long-lived session token is a known
// follow-up.
package credcache

import (
	"context"

	"github.com/dmitrijs2005/todosync/internal/client/models"
	"github.com/dmitrijs2005/todosync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/todosync/internal/logging"
)

// Keys under which the credentials live in the metadata table.
const (
	KeyEmail    = "userEmail"
	KeyPassword = "userPassword"
)

type Cache struct {
	repo   metadata.Repository
	logger logging.Logger
}

func New(repo metadata.Repository, logger logging.Logger) *Cache {
	return &Cache{repo: repo, logger: logger.With("module", "credcache")}
}

// Save writes both keys. Failures are logged only; a half-written pair is
// repaired by the next Load.
func (c *Cache) Save(ctx context.Context, email, password string) {
	if err := c.repo.Set(ctx, KeyEmail, email); err != nil {
		c.logger.Warn(ctx, "failed to cache email", "error", err)
	}
	if err := c.repo.Set(ctx, KeyPassword, password); err != nil {
		c.logger.Warn(ctx, "failed to cache password", "error", err)
	}
}

// Load returns the cached credentials. It reports false when either value
// is missing or empty, and in that case clears the cache.
func (c *Cache) Load(ctx context.Context) (models.Credentials, bool) {
	email, okEmail := c.get(ctx, KeyEmail)
	password, okPassword := c.get(ctx, KeyPassword)

	if !okEmail || !okPassword {
		if okEmail || okPassword {
			c.logger.Info(ctx, "purging partial credential cache")
		}
		c.Clear(ctx)
		return models.Credentials{}, false
	}
	return models.Credentials{Email: email, Password: password}, true
}

// Clear removes both keys. It never fails; errors are logged.
func (c *Cache) Clear(ctx context.Context) {
	for _, key := range []string{KeyEmail, KeyPassword} {
		if err := c.repo.Delete(ctx, key); err != nil {
			c.logger.Warn(ctx, "failed to clear cached credential", "key", key, "error", err)
		}
	}
}

func (c *Cache) get(ctx context.Context, key string) (string, bool) {
	v, ok, err := c.repo.Get(ctx, key)
	if err != nil {
		c.logger.Warn(ctx, "failed to read cached credential", "key", key, "error", err)
		return "", false
	}
	return v, ok && v != ""
}
