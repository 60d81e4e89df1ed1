// Package service implements the application's business logic on top of the
// store interfaces: review ownership enforcement, movie ranking and the user
// account operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BicEv/MovieRatings/internal/domain"
	"github.com/BicEv/MovieRatings/internal/store"
)

// ReviewService manages reviews. Mutations are permitted only to the review's
// author: every update or delete first resolves the review (NotFound wins over
// AccessDenied) and then checks ownership.
type ReviewService struct {
	reviews store.ReviewStore
	movies  store.MovieStore
	users   store.UserStore
	logger  *slog.Logger
}

func NewReviewService(reviews store.ReviewStore, movies store.MovieStore, users store.UserStore, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		movies:  movies,
		users:   users,
		logger:  logger,
	}
}

// Create posts a new review. Both the author and the movie must exist, and the
// author must not have reviewed this movie before.
func (s *ReviewService) Create(ctx context.Context, authorID string, req domain.CreateReviewRequest) (*domain.Review, error) {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("user with id: %s is not found: %w", authorID, err)
		}
		return nil, err
	}
	if _, err := s.movies.GetByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			return nil, fmt.Errorf("movie with id: %s is not found: %w", req.MovieID, err)
		}
		return nil, err
	}

	if _, err := s.reviews.GetByUserAndMovie(ctx, authorID, req.MovieID); err == nil {
		return nil, fmt.Errorf("user %s has already reviewed movie %s: %w", authorID, req.MovieID, store.ErrDuplicateReview)
	} else if !errors.Is(err, store.ErrReviewNotFound) {
		return nil, err
	}

	review := &domain.Review{
		ID:        uuid.NewString(),
		MovieID:   req.MovieID,
		UserID:    authorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Review created",
		slog.String("reviewID", review.ID),
		slog.String("movieID", review.MovieID),
		slog.String("userID", review.UserID))
	return review, nil
}

// GetByID returns a single review.
func (s *ReviewService) GetByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	return s.findOrFail(ctx, reviewID)
}

// ListByMovie returns all reviews for a movie.
func (s *ReviewService) ListByMovie(ctx context.Context, movieID string) ([]*domain.Review, error) {
	return s.reviews.ListByMovieID(ctx, movieID)
}

// ListByUser returns all reviews written by a user.
func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]*domain.Review, error) {
	return s.reviews.ListByUserID(ctx, userID)
}

// Update changes the rating and/or comment of a review. The movie and author
// associations are immutable.
func (s *ReviewService) Update(ctx context.Context, reviewID string, req domain.UpdateReviewRequest, actingUserID string) (*domain.Review, error) {
	review, err := s.findOrFail(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(ctx, review, actingUserID); err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	review.UpdatedAt = time.Now().UTC()

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Review updated", slog.String("reviewID", review.ID), slog.String("userID", actingUserID))
	return review, nil
}

// Delete removes a review. Deleting an already-deleted review yields NotFound.
func (s *ReviewService) Delete(ctx context.Context, reviewID string, actingUserID string) error {
	review, err := s.findOrFail(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.authorizeMutation(ctx, review, actingUserID); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Review deleted", slog.String("reviewID", reviewID), slog.String("userID", actingUserID))
	return nil
}

// findOrFail resolves a review id. Existence is always checked before
// ownership: the guard never runs against a nonexistent entity.
func (s *ReviewService) findOrFail(ctx context.Context, reviewID string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return nil, fmt.Errorf("review with id: %s is not found: %w", reviewID, err)
		}
		return nil, err
	}
	return review, nil
}

// authorizeMutation succeeds only when the acting user is the review's author.
func (s *ReviewService) authorizeMutation(ctx context.Context, review *domain.Review, actingUserID string) error {
	if review.UserID != actingUserID {
		s.logger.WarnContext(ctx, "Review mutation denied",
			slog.String("reviewID", review.ID),
			slog.String("ownerID", review.UserID),
			slog.String("actingUserID", actingUserID))
		return fmt.Errorf("you are not allowed to edit this review: %w", ErrAccessDenied)
	}
	return nil
}
