package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/BicEv/MovieRatings/internal/domain"
)

// PostgresMovieStore implements MovieStore for PostgreSQL.
type PostgresMovieStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresMovieStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMovieStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresMovieStore{db: db, logger: logger}, nil
}

func (s *PostgresMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (id, title, synopsis, genre, release_year, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`

	movie.CreatedAt = time.Now().UTC()
	movie.UpdatedAt = movie.CreatedAt

	s.logger.DebugContext(ctx, "Executing Create movie query", slog.String("movieID", movie.ID), slog.String("title", movie.Title))
	_, err := s.db.ExecContext(ctx, query, movie.ID, movie.Title, movie.Synopsis, movie.Genre, movie.ReleaseYear, movie.CreatedAt, movie.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "Movie already exists (unique constraint violation in DB)",
				slog.String("title", movie.Title), slog.String("constraint", pqErr.Constraint))
			return ErrMovieAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to create movie in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create movie: %w", err)
	}
	s.logger.InfoContext(ctx, "Movie created successfully in DB", slog.String("movieID", movie.ID))
	return nil
}

func (s *PostgresMovieStore) GetByID(ctx context.Context, movieID string) (*domain.Movie, error) {
	query := `SELECT id, title, synopsis, genre, release_year, created_at, updated_at
              FROM movies WHERE id = $1`
	var movie domain.Movie
	err := s.db.GetContext(ctx, &movie, query, movieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get movie by ID from DB", slog.String("movieID", movieID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get movie by ID: %w", err)
	}
	return &movie, nil
}

func (s *PostgresMovieStore) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	query := `SELECT id, title, synopsis, genre, release_year, created_at, updated_at
              FROM movies WHERE lower(title) = lower($1)
              ORDER BY created_at ASC LIMIT 1`
	var movie domain.Movie
	err := s.db.GetContext(ctx, &movie, query, title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get movie by title from DB", slog.String("title", title), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get movie by title: %w", err)
	}
	return &movie, nil
}

func (s *PostgresMovieStore) ListByTitle(ctx context.Context, title string) ([]*domain.Movie, error) {
	query := `SELECT id, title, synopsis, genre, release_year, created_at, updated_at
              FROM movies WHERE lower(title) = lower($1)
              ORDER BY created_at ASC, id ASC`
	var movies []*domain.Movie
	err := s.db.SelectContext(ctx, &movies, query, title)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movies by title from DB", slog.String("title", title), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list movies by title: %w", err)
	}
	return movies, nil
}

func (s *PostgresMovieStore) List(ctx context.Context) ([]*domain.Movie, error) {
	query := `SELECT id, title, synopsis, genre, release_year, created_at, updated_at
              FROM movies ORDER BY created_at ASC, id ASC`
	var movies []*domain.Movie
	err := s.db.SelectContext(ctx, &movies, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movies from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

func (s *PostgresMovieStore) Update(ctx context.Context, movie *domain.Movie) error {
	query := `UPDATE movies SET title = $1, synopsis = $2, genre = $3, release_year = $4, updated_at = $5
              WHERE id = $6`
	movie.UpdatedAt = time.Now().UTC()

	s.logger.DebugContext(ctx, "Executing Update movie query", slog.String("movieID", movie.ID))
	result, err := s.db.ExecContext(ctx, query, movie.Title, movie.Synopsis, movie.Genre, movie.ReleaseYear, movie.UpdatedAt, movie.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			s.logger.WarnContext(ctx, "Update failed: movie already exists (DB constraint)",
				slog.String("movieID", movie.ID), slog.String("constraint", pqErr.Constraint))
			return ErrMovieAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to update movie in DB", slog.String("movieID", movie.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update movie: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}

func (s *PostgresMovieStore) Delete(ctx context.Context, movieID string) error {
	query := `DELETE FROM movies WHERE id = $1`

	s.logger.DebugContext(ctx, "Executing Delete movie query", slog.String("movieID", movieID))
	result, err := s.db.ExecContext(ctx, query, movieID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete movie from DB", slog.String("movieID", movieID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMovieNotFound
	}
	s.logger.InfoContext(ctx, "Movie deleted successfully from DB", slog.String("movieID", movieID))
	return nil
}
