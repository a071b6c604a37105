// Package repomanager vends repository implementations for the configured
// storage backend. The watchlist started life on an in-memory slice, moved
// to DynamoDB and then to PostgreSQL; all three remain selectable so the
// service layer never changes when the backend does.
package repomanager

import (
	"context"

	"github.com/reelist/reelist/internal/server/repositories/users"
	"github.com/reelist/reelist/internal/server/repositories/watched"
)

// RepositoryManager bundles the per-backend repository constructors together
// with the backend's lifecycle hooks.
type RepositoryManager interface {
	// RunMigrations prepares the backend's schema. Backends without a
	// schema concept treat this as a no-op.
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Watched() watched.Repository
	Close() error
}
