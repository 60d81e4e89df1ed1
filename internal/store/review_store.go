package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BicEv/MovieRatings/internal/domain"
	"github.com/BicEv/MovieRatings/internal/rating"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("user has already reviewed this movie")
)

// ReviewStore defines the persistence operations for reviews.
type ReviewStore interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, reviewID string) (*domain.Review, error)
	GetByUserAndMovie(ctx context.Context, userID, movieID string) (*domain.Review, error)
	ListByMovieID(ctx context.Context, movieID string) ([]*domain.Review, error)
	ListByUserID(ctx context.Context, userID string) ([]*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, reviewID string) error
	DeleteByMovieID(ctx context.Context, movieID string) error
	DeleteByUserID(ctx context.Context, userID string) error
	AggregatedRatingByMovieID(ctx context.Context, movieID string) (*domain.AggregatedRating, error)
}

// MockReviewStore is an in-memory ReviewStore used in tests. Reviews for a
// movie keep their insertion order.
type MockReviewStore struct {
	mu             sync.RWMutex
	reviews        map[string]*domain.Review // key: reviewID
	reviewsByMovie map[string][]string       // key: movieID, value: ordered review IDs
}

func NewMockReviewStore() *MockReviewStore {
	return &MockReviewStore{
		reviews:        make(map[string]*domain.Review),
		reviewsByMovie: make(map[string][]string),
	}
}

func (m *MockReviewStore) Create(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.reviews {
		if existing.UserID == review.UserID && existing.MovieID == review.MovieID {
			return ErrDuplicateReview
		}
	}

	reviewCopy := *review
	reviewCopy.CreatedAt = time.Now().UTC()
	reviewCopy.UpdatedAt = reviewCopy.CreatedAt
	m.reviews[review.ID] = &reviewCopy
	m.reviewsByMovie[review.MovieID] = append(m.reviewsByMovie[review.MovieID], review.ID)
	return nil
}

func (m *MockReviewStore) GetByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if review, ok := m.reviews[reviewID]; ok {
		reviewCopy := *review
		return &reviewCopy, nil
	}
	return nil, ErrReviewNotFound
}

func (m *MockReviewStore) GetByUserAndMovie(ctx context.Context, userID, movieID string) (*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, review := range m.reviews {
		if review.UserID == userID && review.MovieID == movieID {
			reviewCopy := *review
			return &reviewCopy, nil
		}
	}
	return nil, ErrReviewNotFound
}

func (m *MockReviewStore) ListByMovieID(ctx context.Context, movieID string) ([]*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.reviewsByMovie[movieID]
	reviews := make([]*domain.Review, 0, len(ids))
	for _, id := range ids {
		if review, ok := m.reviews[id]; ok {
			reviewCopy := *review
			reviews = append(reviews, &reviewCopy)
		}
	}
	return reviews, nil
}

func (m *MockReviewStore) ListByUserID(ctx context.Context, userID string) ([]*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var reviews []*domain.Review
	for _, movieReviews := range m.reviewsByMovie {
		for _, id := range movieReviews {
			if review, ok := m.reviews[id]; ok && review.UserID == userID {
				reviewCopy := *review
				reviews = append(reviews, &reviewCopy)
			}
		}
	}
	return reviews, nil
}

func (m *MockReviewStore) Update(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.reviews[review.ID]
	if !ok {
		return ErrReviewNotFound
	}

	updated := *review
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	m.reviews[review.ID] = &updated
	return nil
}

func (m *MockReviewStore) Delete(ctx context.Context, reviewID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	review, ok := m.reviews[reviewID]
	if !ok {
		return ErrReviewNotFound
	}
	delete(m.reviews, reviewID)
	m.removeFromMovieIndex(review.MovieID, reviewID)
	return nil
}

func (m *MockReviewStore) DeleteByMovieID(ctx context.Context, movieID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.reviewsByMovie[movieID] {
		delete(m.reviews, id)
	}
	delete(m.reviewsByMovie, movieID)
	return nil
}

func (m *MockReviewStore) DeleteByUserID(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, review := range m.reviews {
		if review.UserID == userID {
			delete(m.reviews, id)
			m.removeFromMovieIndex(review.MovieID, id)
		}
	}
	return nil
}

func (m *MockReviewStore) AggregatedRatingByMovieID(ctx context.Context, movieID string) (*domain.AggregatedRating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var reviews []*domain.Review
	for _, id := range m.reviewsByMovie[movieID] {
		if review, ok := m.reviews[id]; ok {
			reviews = append(reviews, review)
		}
	}
	average, err := rating.Average(reviews)
	if err != nil {
		return nil, err
	}
	return &domain.AggregatedRating{
		MovieID:       movieID,
		AverageRating: average,
		RatingCount:   int64(len(reviews)),
	}, nil
}

// removeFromMovieIndex must be called with the write lock held.
func (m *MockReviewStore) removeFromMovieIndex(movieID, reviewID string) {
	ids := m.reviewsByMovie[movieID]
	for i, id := range ids {
		if id == reviewID {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(m.reviewsByMovie, movieID)
	} else {
		m.reviewsByMovie[movieID] = ids
	}
}
