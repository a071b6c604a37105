package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reelist/reelist/internal/common"
	"github.com/reelist/reelist/internal/server/models"
	"github.com/reelist/reelist/internal/server/repositories/watched"
)

// WatchedService is the authorized CRUD surface over the watchlist store.
// Every operation takes the userID resolved by the auth middleware; none
// accept a caller-supplied identity.
type WatchedService struct {
	repo watched.Repository
}

// NewWatchedService constructs a WatchedService over the given store.
func NewWatchedService(repo watched.Repository) *WatchedService {
	return &WatchedService{repo: repo}
}

// Add records a movie on the user's watched list. Year and poster are
// optional. A duplicate (user, movie) pair yields common.ErrAlreadyExists;
// AddedAt is server-assigned.
func (s *WatchedService) Add(ctx context.Context, userID, imdbID, title, year, poster string) (*models.WatchedMovie, error) {
	if imdbID == "" || title == "" {
		return nil, fmt.Errorf("%w: missing imdbID or title", common.ErrValidation)
	}

	movie := &models.WatchedMovie{
		UserID:  userID,
		ImdbID:  imdbID,
		Title:   title,
		Year:    year,
		Poster:  poster,
		AddedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, movie)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error adding watched movie: %w", err)
	}

	return created, nil
}

// List returns the user's watched movies, most recently added first. An
// empty list is a valid result, not an error.
func (s *WatchedService) List(ctx context.Context, userID string) ([]*models.WatchedMovie, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing watched movies: %w", err)
	}
	return list, nil
}

// Remove deletes one entry from the user's watched list. A missing entry
// yields common.ErrNotFound.
func (s *WatchedService) Remove(ctx context.Context, userID, imdbID string) error {
	if imdbID == "" {
		return fmt.Errorf("%w: missing movie id", common.ErrValidation)
	}

	if err := s.repo.Delete(ctx, userID, imdbID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error removing watched movie: %w", err)
	}

	return nil
}
