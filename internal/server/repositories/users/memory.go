package users

import (
	"context"
	"sync"

	"github.com/reelist/reelist/internal/common"
	"github.com/reelist/reelist/internal/server/models"
)

// MemoryRepository is a mutex-guarded in-memory credential store. The lock
// spans the existence check and the insert, so concurrent registrations with
// the same email resolve to exactly one winner.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by email
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return nil, common.ErrAlreadyExists
	}

	r.users[user.Email] = *user
	return user, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}

	u := user
	return &u, nil
}

var _ Repository = (*MemoryRepository)(nil)
