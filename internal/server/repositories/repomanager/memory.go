package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/todosync/internal/server/repositories/documents"
	"github.com/dmitrijs2005/todosync/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/todosync/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. Data is lost
// on restart. WithTx serializes callers but does not undo partial writes.
type MemoryRepositoryManager struct {
	txMu      sync.Mutex
	users     *users.MemoryRepository
	sessions  *sessions.MemoryRepository
	documents *documents.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:     users.NewMemoryRepository(),
		sessions:  sessions.NewMemoryRepository(),
		documents: documents.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository         { return m.users }
func (m *MemoryRepositoryManager) Sessions() sessions.Repository   { return m.sessions }
func (m *MemoryRepositoryManager) Documents() documents.Repository { return m.documents }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m)
}

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
