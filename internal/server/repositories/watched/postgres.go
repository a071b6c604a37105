package watched

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/reelist/reelist/internal/common"
	"github.com/reelist/reelist/internal/dbx"
	"github.com/reelist/reelist/internal/server/models"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the entry. The composite primary key (user_id, imdb_id)
// makes duplicate adds race-safe; a duplicate yields common.ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, movie *models.WatchedMovie) (*models.WatchedMovie, error) {
	query := `
		INSERT INTO watched_movies (user_id, imdb_id, title, year, poster, added_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		movie.UserID, movie.ImdbID, movie.Title, movie.Year, movie.Poster, movie.AddedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return movie, nil
}

// ListByUser returns the user's entries ordered by added_at descending.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.WatchedMovie, error) {
	query := `
		SELECT user_id, imdb_id, title, year, poster, added_at FROM watched_movies
		WHERE user_id = $1
		ORDER BY added_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.WatchedMovie{}
	for rows.Next() {
		var item models.WatchedMovie
		if err := rows.Scan(
			&item.UserID, &item.ImdbID, &item.Title, &item.Year, &item.Poster, &item.AddedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Delete removes the entry for (userID, imdbID). Returns common.ErrNotFound
// when no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, userID, imdbID string) error {
	query := `
		DELETE FROM watched_movies
		WHERE user_id = $1 AND imdb_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, imdbID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

var _ Repository = (*PostgresRepository)(nil)
