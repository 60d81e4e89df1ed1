package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/BicEv/MovieRatings/internal/domain"
)

var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrMovieAlreadyExists = errors.New("movie with this title, genre and release year already exists")
)

// MovieStore defines the persistence operations for movies.
type MovieStore interface {
	Create(ctx context.Context, movie *domain.Movie) error
	GetByID(ctx context.Context, movieID string) (*domain.Movie, error)
	GetByTitle(ctx context.Context, title string) (*domain.Movie, error)
	ListByTitle(ctx context.Context, title string) ([]*domain.Movie, error)
	List(ctx context.Context) ([]*domain.Movie, error)
	Update(ctx context.Context, movie *domain.Movie) error
	Delete(ctx context.Context, movieID string) error
}

// MockMovieStore is an in-memory MovieStore used in tests. Insertion order is
// preserved so List results are deterministic.
type MockMovieStore struct {
	mu     sync.RWMutex
	movies map[string]*domain.Movie // key: movieID
	order  []string
}

func NewMockMovieStore() *MockMovieStore {
	return &MockMovieStore{movies: make(map[string]*domain.Movie)}
}

func (m *MockMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.movies {
		if strings.EqualFold(existing.Title, movie.Title) &&
			strings.EqualFold(existing.Genre, movie.Genre) &&
			existing.ReleaseYear == movie.ReleaseYear {
			return ErrMovieAlreadyExists
		}
	}

	movieCopy := *movie
	movieCopy.CreatedAt = time.Now().UTC()
	movieCopy.UpdatedAt = movieCopy.CreatedAt
	m.movies[movie.ID] = &movieCopy
	m.order = append(m.order, movie.ID)
	return nil
}

func (m *MockMovieStore) GetByID(ctx context.Context, movieID string) (*domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if movie, ok := m.movies[movieID]; ok {
		movieCopy := *movie
		return &movieCopy, nil
	}
	return nil, ErrMovieNotFound
}

func (m *MockMovieStore) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		if movie, ok := m.movies[id]; ok && strings.EqualFold(movie.Title, title) {
			movieCopy := *movie
			return &movieCopy, nil
		}
	}
	return nil, ErrMovieNotFound
}

func (m *MockMovieStore) ListByTitle(ctx context.Context, title string) ([]*domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var movies []*domain.Movie
	for _, id := range m.order {
		if movie, ok := m.movies[id]; ok && strings.EqualFold(movie.Title, title) {
			movieCopy := *movie
			movies = append(movies, &movieCopy)
		}
	}
	return movies, nil
}

func (m *MockMovieStore) List(ctx context.Context) ([]*domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	movies := make([]*domain.Movie, 0, len(m.movies))
	for _, id := range m.order {
		if movie, ok := m.movies[id]; ok {
			movieCopy := *movie
			movies = append(movies, &movieCopy)
		}
	}
	return movies, nil
}

func (m *MockMovieStore) Update(ctx context.Context, movie *domain.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.movies[movie.ID]
	if !ok {
		return ErrMovieNotFound
	}
	for id, other := range m.movies {
		if id == movie.ID {
			continue
		}
		if strings.EqualFold(other.Title, movie.Title) &&
			strings.EqualFold(other.Genre, movie.Genre) &&
			other.ReleaseYear == movie.ReleaseYear {
			return ErrMovieAlreadyExists
		}
	}

	updated := *movie
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	m.movies[movie.ID] = &updated
	return nil
}

func (m *MockMovieStore) Delete(ctx context.Context, movieID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movies[movieID]; !ok {
		return ErrMovieNotFound
	}
	delete(m.movies, movieID)
	for i, id := range m.order {
		if id == movieID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
