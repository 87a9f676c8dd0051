// Package repomanager vends the server repositories for one backing store
// and runs groups of repository calls atomically.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/todosync/internal/server/repositories/documents"
	"github.com/dmitrijs2005/todosync/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/todosync/internal/server/repositories/users"
)

// Repositories is the set of repositories bound to one handle (a pool or a
// transaction).
type Repositories interface {
	Users() users.Repository
	Sessions() sessions.Repository
	Documents() documents.Repository
}

type RepositoryManager interface {
	Repositories

	// WithTx runs fn with repositories bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	RunMigrations(ctx context.Context) error
	Close() error
}
