package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BicEv/MovieRatings/internal/domain"
	"github.com/BicEv/MovieRatings/internal/rating"
	"github.com/BicEv/MovieRatings/internal/store"
)

// MovieService manages movies and their derived ratings.
type MovieService struct {
	movies  store.MovieStore
	reviews store.ReviewStore
	logger  *slog.Logger
}

func NewMovieService(movies store.MovieStore, reviews store.ReviewStore, logger *slog.Logger) *MovieService {
	return &MovieService{
		movies:  movies,
		reviews: reviews,
		logger:  logger,
	}
}

// Create adds a new movie. A movie counts as a duplicate only when title,
// genre and release year all match an existing one, so remakes under the same
// title are allowed.
func (s *MovieService) Create(ctx context.Context, req domain.CreateMovieRequest) (*domain.Movie, error) {
	if err := s.checkIdentityFree(ctx, req.Title, req.Genre, req.ReleaseYear, ""); err != nil {
		return nil, err
	}

	movie := &domain.Movie{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Synopsis:    req.Synopsis,
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Movie created", slog.String("movieID", movie.ID), slog.String("title", movie.Title))
	return movie, nil
}

// GetByID returns a movie with its derived rating and review ids attached.
func (s *MovieService) GetByID(ctx context.Context, movieID string) (*domain.Movie, error) {
	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			return nil, fmt.Errorf("movie with id: %s is not found: %w", movieID, err)
		}
		return nil, err
	}
	if err := s.attachReviews(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// GetByTitle returns a movie by its title with its derived rating attached.
func (s *MovieService) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	movie, err := s.movies.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			return nil, fmt.Errorf("movie: %s is not found: %w", title, err)
		}
		return nil, err
	}
	if err := s.attachReviews(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// AggregatedRating returns the average rating and review count for a movie.
func (s *MovieService) AggregatedRating(ctx context.Context, movieID string) (*domain.AggregatedRating, error) {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			return nil, fmt.Errorf("movie with id: %s is not found: %w", movieID, err)
		}
		return nil, err
	}
	return s.reviews.AggregatedRatingByMovieID(ctx, movieID)
}

// ListRankedByRating returns all movies ordered by their average rating,
// highest first. Movies without reviews carry 0.0 and come last; ties keep
// the stores' listing order.
func (s *MovieService) ListRankedByRating(ctx context.Context) ([]*domain.Movie, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, movie := range movies {
		agg, err := s.reviews.AggregatedRatingByMovieID(ctx, movie.ID)
		if err != nil {
			return nil, err
		}
		movie.Rating = agg.AverageRating
	}
	rating.RankMovies(movies)
	return movies, nil
}

// Update changes a movie's details.
func (s *MovieService) Update(ctx context.Context, movieID string, req domain.UpdateMovieRequest) (*domain.Movie, error) {
	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			return nil, fmt.Errorf("movie with id: %s is not found: %w", movieID, err)
		}
		return nil, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Synopsis != nil {
		movie.Synopsis = *req.Synopsis
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.ReleaseYear != nil {
		movie.ReleaseYear = *req.ReleaseYear
	}
	movie.UpdatedAt = time.Now().UTC()

	// An update can collide with another movie's identity just like a create.
	if err := s.checkIdentityFree(ctx, movie.Title, movie.Genre, movie.ReleaseYear, movie.ID); err != nil {
		return nil, err
	}

	if err := s.movies.Update(ctx, movie); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Movie updated", slog.String("movieID", movie.ID))

	if err := s.attachReviews(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// Delete removes a movie and all of its reviews. The reviews go first, as an
// explicit application-level step rather than a storage-side cascade.
func (s *MovieService) Delete(ctx context.Context, movieID string) error {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			return fmt.Errorf("movie with id: %s is not found: %w", movieID, err)
		}
		return err
	}
	if err := s.reviews.DeleteByMovieID(ctx, movieID); err != nil {
		return err
	}
	if err := s.movies.Delete(ctx, movieID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Movie and its reviews deleted", slog.String("movieID", movieID))
	return nil
}

// checkIdentityFree fails with ErrMovieAlreadyExists when any movie other
// than excludeID already carries the (title, genre, releaseYear) identity.
// Title and genre compare case-insensitively.
func (s *MovieService) checkIdentityFree(ctx context.Context, title, genre string, releaseYear int, excludeID string) error {
	sameTitle, err := s.movies.ListByTitle(ctx, title)
	if err != nil {
		return err
	}
	for _, existing := range sameTitle {
		if existing.ID == excludeID {
			continue
		}
		if strings.EqualFold(existing.Genre, genre) && existing.ReleaseYear == releaseYear {
			return fmt.Errorf("movie %s already exists: %w", title, store.ErrMovieAlreadyExists)
		}
	}
	return nil
}

// attachReviews fills the movie's derived rating and review id list from its
// current review set.
func (s *MovieService) attachReviews(ctx context.Context, movie *domain.Movie) error {
	reviews, err := s.reviews.ListByMovieID(ctx, movie.ID)
	if err != nil {
		return err
	}
	average, err := rating.Average(reviews)
	if err != nil {
		return err
	}
	movie.Rating = average
	movie.ReviewIDs = make([]string, 0, len(reviews))
	for _, review := range reviews {
		movie.ReviewIDs = append(movie.ReviewIDs, review.ID)
	}
	return nil
}
