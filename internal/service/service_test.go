package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BicEv/MovieRatings/internal/domain"
	"github.com/BicEv/MovieRatings/internal/store"
)

type testEnv struct {
	users   *UserService
	movies  *MovieService
	reviews *ReviewService
}

func newTestEnv() *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userStore := store.NewMockUserStore()
	movieStore := store.NewMockMovieStore()
	reviewStore := store.NewMockReviewStore()
	return &testEnv{
		users:   NewUserService(userStore, reviewStore, logger),
		movies:  NewMovieService(movieStore, reviewStore, logger),
		reviews: NewReviewService(reviewStore, movieStore, userStore, logger),
	}
}

func (e *testEnv) registerUser(t *testing.T, email, userName string) *domain.User {
	t.Helper()
	user, err := e.users.Register(context.Background(), domain.RegisterRequest{
		Email:    email,
		UserName: userName,
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createMovie(t *testing.T, title, genre string, year int) *domain.Movie {
	t.Helper()
	movie, err := e.movies.Create(context.Background(), domain.CreateMovieRequest{
		Title:       title,
		Genre:       genre,
		ReleaseYear: year,
	})
	require.NoError(t, err)
	return movie
}

func (e *testEnv) postReview(t *testing.T, userID, movieID string, ratingValue int, comment string) *domain.Review {
	t.Helper()
	review, err := e.reviews.Create(context.Background(), userID, domain.CreateReviewRequest{
		MovieID: movieID,
		Rating:  ratingValue,
		Comment: comment,
	})
	require.NoError(t, err)
	return review
}
