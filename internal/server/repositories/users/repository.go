// Package users persists account records. A user is created once at
// registration and never updated or deleted afterwards.
package users

import (
	"context"

	"github.com/reelist/reelist/internal/server/models"
)

// Repository is the credential store. Create must be atomic with respect to
// email uniqueness: of two concurrent creates for the same email, exactly one
// succeeds and the other observes common.ErrAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
