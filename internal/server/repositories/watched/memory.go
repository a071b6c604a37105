package watched

import (
	"context"
	"sort"
	"sync"

	"github.com/reelist/reelist/internal/common"
	"github.com/reelist/reelist/internal/server/models"
)

// MemoryRepository is a mutex-guarded in-memory watchlist store. The lock
// spans the duplicate check and the insert, so concurrent adds of the same
// (user, movie) pair resolve to exactly one winner.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string][]models.WatchedMovie // keyed by user id, insertion order
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entries: make(map[string][]models.WatchedMovie)}
}

func (r *MemoryRepository) Create(ctx context.Context, movie *models.WatchedMovie) (*models.WatchedMovie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries[movie.UserID] {
		if existing.ImdbID == movie.ImdbID {
			return nil, common.ErrAlreadyExists
		}
	}

	r.entries[movie.UserID] = append(r.entries[movie.UserID], *movie)
	return movie, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.WatchedMovie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.entries[userID]

	// Reverse insertion order first so entries that share an AddedAt
	// timestamp still come back newest-first after the stable sort.
	result := make([]*models.WatchedMovie, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		item := stored[i]
		result = append(result, &item)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AddedAt.After(result[j].AddedAt)
	})

	return result, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, imdbID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.entries[userID]
	for i, existing := range stored {
		if existing.ImdbID == imdbID {
			r.entries[userID] = append(stored[:i:i], stored[i+1:]...)
			return nil
		}
	}

	return common.ErrNotFound
}

var _ Repository = (*MemoryRepository)(nil)
