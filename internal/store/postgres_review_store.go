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

// PostgresReviewStore implements ReviewStore for PostgreSQL.
type PostgresReviewStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresReviewStore(db *sqlx.DB, logger *slog.Logger) (*PostgresReviewStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresReviewStore{db: db, logger: logger}, nil
}

func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	query := `INSERT INTO reviews (id, movie_id, user_id, rating, comment, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`

	review.CreatedAt = time.Now().UTC()
	review.UpdatedAt = review.CreatedAt

	s.logger.DebugContext(ctx, "Executing Create review query",
		slog.String("reviewID", review.ID),
		slog.String("movieID", review.MovieID),
		slog.String("userID", review.UserID))

	_, err := s.db.ExecContext(ctx, query,
		review.ID, review.MovieID, review.UserID, review.Rating, review.Comment,
		review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			if pqErr.Constraint == "uq_user_movie_review" {
				s.logger.WarnContext(ctx, "User has already reviewed this movie (DB constraint)",
					slog.String("movieID", review.MovieID), slog.String("userID", review.UserID))
				return ErrDuplicateReview
			}
			return fmt.Errorf("failed to create review due to unique constraint %s: %w", pqErr.Constraint, err)
		}
		s.logger.ErrorContext(ctx, "Failed to create review in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create review: %w", err)
	}
	s.logger.InfoContext(ctx, "Review created successfully in DB", slog.String("reviewID", review.ID))
	return nil
}

func (s *PostgresReviewStore) GetByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	query := `SELECT id, movie_id, user_id, rating, comment, created_at, updated_at
              FROM reviews WHERE id = $1`
	var review domain.Review
	err := s.db.GetContext(ctx, &review, query, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get review by ID from DB", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get review by ID: %w", err)
	}
	return &review, nil
}

func (s *PostgresReviewStore) GetByUserAndMovie(ctx context.Context, userID, movieID string) (*domain.Review, error) {
	query := `SELECT id, movie_id, user_id, rating, comment, created_at, updated_at
              FROM reviews WHERE user_id = $1 AND movie_id = $2`
	var review domain.Review
	err := s.db.GetContext(ctx, &review, query, userID, movieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get review by user and movie from DB",
			slog.String("userID", userID), slog.String("movieID", movieID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get review by user and movie: %w", err)
	}
	return &review, nil
}

func (s *PostgresReviewStore) ListByMovieID(ctx context.Context, movieID string) ([]*domain.Review, error) {
	query := `SELECT id, movie_id, user_id, rating, comment, created_at, updated_at
              FROM reviews WHERE movie_id = $1 ORDER BY created_at ASC, id ASC`
	var reviews []*domain.Review
	err := s.db.SelectContext(ctx, &reviews, query, movieID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list reviews by movieID from DB", slog.String("movieID", movieID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reviews by movieID: %w", err)
	}
	return reviews, nil
}

func (s *PostgresReviewStore) ListByUserID(ctx context.Context, userID string) ([]*domain.Review, error) {
	query := `SELECT id, movie_id, user_id, rating, comment, created_at, updated_at
              FROM reviews WHERE user_id = $1 ORDER BY created_at ASC, id ASC`
	var reviews []*domain.Review
	err := s.db.SelectContext(ctx, &reviews, query, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list reviews by userID from DB", slog.String("userID", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reviews by userID: %w", err)
	}
	return reviews, nil
}

func (s *PostgresReviewStore) Update(ctx context.Context, review *domain.Review) error {
	query := `UPDATE reviews SET rating = $1, comment = $2, updated_at = $3 WHERE id = $4`
	review.UpdatedAt = time.Now().UTC()

	s.logger.DebugContext(ctx, "Executing Update review query", slog.String("reviewID", review.ID))
	result, err := s.db.ExecContext(ctx, query, review.Rating, review.Comment, review.UpdatedAt, review.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update review in DB", slog.String("reviewID", review.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update review: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check review update result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (s *PostgresReviewStore) Delete(ctx context.Context, reviewID string) error {
	query := `DELETE FROM reviews WHERE id = $1`

	s.logger.DebugContext(ctx, "Executing Delete review query", slog.String("reviewID", reviewID))
	result, err := s.db.ExecContext(ctx, query, reviewID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete review from DB", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete review: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check review delete result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrReviewNotFound
	}
	s.logger.InfoContext(ctx, "Review deleted successfully from DB", slog.String("reviewID", reviewID))
	return nil
}

func (s *PostgresReviewStore) DeleteByMovieID(ctx context.Context, movieID string) error {
	query := `DELETE FROM reviews WHERE movie_id = $1`
	if _, err := s.db.ExecContext(ctx, query, movieID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete reviews by movieID from DB", slog.String("movieID", movieID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete reviews by movieID: %w", err)
	}
	return nil
}

func (s *PostgresReviewStore) DeleteByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM reviews WHERE user_id = $1`
	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete reviews by userID from DB", slog.String("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete reviews by userID: %w", err)
	}
	return nil
}

func (s *PostgresReviewStore) AggregatedRatingByMovieID(ctx context.Context, movieID string) (*domain.AggregatedRating, error) {
	query := `SELECT COALESCE(AVG(rating), 0) AS average_rating, COUNT(rating) AS rating_count
              FROM reviews WHERE movie_id = $1`

	var aggRating domain.AggregatedRating
	aggRating.MovieID = movieID

	err := s.db.GetContext(ctx, &aggRating, query, movieID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get aggregated rating from DB", slog.String("movieID", movieID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get aggregated rating for movieID %s: %w", movieID, err)
	}
	return &aggRating, nil
}
