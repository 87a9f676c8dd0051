// Package users stores accounts: email, optional display name and bcrypt
// password hash.
package users

import (
	"context"

	"github.com/dmitrijs2005/todosync/internal/server/models"
)

type Repository interface {
	// Create inserts user, assigning an id when it has none. A taken email
	// yields common.ErrEmailInUse.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	SetDisplayName(ctx context.Context, id string, name string) error
}
