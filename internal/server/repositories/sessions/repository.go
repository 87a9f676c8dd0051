// Package sessions stores the server side of client sessions. Access
// tokens name a session; a token is honored only while its session row
// exists and has not expired.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/todosync/internal/server/models"
)

type Repository interface {
	// Create stores a new session for userID expiring after validity.
	Create(ctx context.Context, userID string, validity time.Duration) (*models.Session, error)

	// Find returns common.ErrorNotFound for unknown ids.
	Find(ctx context.Context, id string) (*models.Session, error)

	// Delete is idempotent.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes sessions that expired before now and reports
	// how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
