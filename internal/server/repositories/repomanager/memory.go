package repomanager

import (
	"context"

	"github.com/reelist/reelist/internal/server/repositories/users"
	"github.com/reelist/reelist/internal/server/repositories/watched"
)

// MemoryRepositoryManager vends the in-memory repositories. State lives for
// the lifetime of the process; useful for development and tests.
type MemoryRepositoryManager struct {
	users   *users.MemoryRepository
	watched *watched.MemoryRepository
}

// NewMemoryRepositoryManager constructs a manager with empty stores.
func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:   users.NewMemoryRepository(),
		watched: watched.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) Watched() watched.Repository { return m.watched }

func (m *MemoryRepositoryManager) Close() error { return nil }

var _ RepositoryManager = (*MemoryRepositoryManager)(nil)
