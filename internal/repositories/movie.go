package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"movie-ticket-cart/internal/database"
	"movie-ticket-cart/internal/models"
)

// MovieRepository handles the cached movie catalog
type MovieRepository struct {
	db *database.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *database.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Movies returns the stored catalog in display order.
// It satisfies catalog.Provider so the database can back the movie list.
func (r *MovieRepository) Movies(ctx context.Context) ([]models.MovieRef, error) {
	query := `
		SELECT id, title, overview, poster_path
		FROM movies
		ORDER BY position, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	var movies []models.MovieRef
	for rows.Next() {
		var movie models.MovieRef
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.Description, &movie.PosterPath); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movies: %w", err)
	}

	return movies, nil
}

// GetByID returns a single movie
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*models.MovieRef, error) {
	query := r.db.Rebind(`SELECT id, title, overview, poster_path FROM movies WHERE id = ?`)

	movie := &models.MovieRef{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&movie.ID, &movie.Title, &movie.Description, &movie.PosterPath)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %d", models.ErrMovieNotFound, id)
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return movie, nil
}

// ReplaceAll swaps the stored catalog for the given movies in one transaction.
// Slice order becomes display order.
func (r *MovieRepository) ReplaceAll(ctx context.Context, movies []models.MovieRef) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM movies"); err != nil {
		return fmt.Errorf("failed to clear movies: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, r.db.Rebind(`
		INSERT INTO movies (id, title, overview, poster_path, position)
		VALUES (?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, movie := range movies {
		if _, err := stmt.ExecContext(ctx, movie.ID, movie.Title, movie.Description, movie.PosterPath, i); err != nil {
			return fmt.Errorf("failed to insert movie %d: %w", movie.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit movies: %w", err)
	}

	return nil
}

// Count returns the number of stored movies
func (r *MovieRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}
