// Package watched persists per-user watched-movie entries keyed by
// (user id, IMDb id).
package watched

import (
	"context"

	"github.com/reelist/reelist/internal/server/models"
)

// Repository is the watchlist store. Create must be atomic with respect to
// the (UserID, ImdbID) uniqueness invariant: of two concurrent adds for the
// same pair, exactly one succeeds and the other observes
// common.ErrAlreadyExists. ListByUser returns entries newest-first by AddedAt.
type Repository interface {
	Create(ctx context.Context, movie *models.WatchedMovie) (*models.WatchedMovie, error)
	ListByUser(ctx context.Context, userID string) ([]*models.WatchedMovie, error)
	Delete(ctx context.Context, userID, imdbID string) error
}
