package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/BicEv/MovieRatings/internal/domain"
	"github.com/BicEv/MovieRatings/internal/service"
	"github.com/BicEv/MovieRatings/internal/store"
	"github.com/BicEv/MovieRatings/pkg/auth"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "admin_password"
)

type testAPI struct {
	router  http.Handler
	users   *service.UserService
	movies  *service.MovieService
	reviews *service.ReviewService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userStore := store.NewMockUserStore()
	movieStore := store.NewMockMovieStore()
	reviewStore := store.NewMockReviewStore()

	users := service.NewUserService(userStore, reviewStore, logger)
	movies := service.NewMovieService(movieStore, reviewStore, logger)
	reviews := service.NewReviewService(reviewStore, movieStore, userStore, logger)

	tokenManager, err := auth.NewTokenManager("test-secret-key-for-handler-tests", time.Hour)
	require.NoError(t, err)

	require.NoError(t, users.EnsureAdmin(context.Background(), testAdminEmail, "movieadmin", testAdminPassword))

	handler := NewHandler(users, movies, reviews, logger, validator.New(), tokenManager)
	return &testAPI{
		router:  NewRouter(handler),
		users:   users,
		movies:  movies,
		reviews: reviews,
	}
}

// do performs a request against the router. An empty token leaves the request
// unauthenticated.
func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

// registerAndLogin creates a regular user through the public endpoints and
// returns the user together with a valid token.
func (a *testAPI) registerAndLogin(t *testing.T, email, userName string) (*domain.User, string) {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"email":    email,
		"userName": userName,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	return a.login(t, email, "secret123")
}

func (a *testAPI) login(t *testing.T, email, password string) (*domain.User, string) {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[domain.LoginResponse](t, rec)
	require.NotEmpty(t, resp.Token)
	return resp.User, resp.Token
}

func (a *testAPI) adminToken(t *testing.T) string {
	t.Helper()
	_, token := a.login(t, testAdminEmail, testAdminPassword)
	return token
}

// createMovie inserts a movie through the admin endpoint.
func (a *testAPI) createMovie(t *testing.T, adminToken, title, genre string, year int) *domain.Movie {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/movies", adminToken, map[string]interface{}{
		"title":       title,
		"genre":       genre,
		"releaseYear": year,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	movie := decodeBody[domain.Movie](t, rec)
	return &movie
}

// postReview inserts a review as the given user.
func (a *testAPI) postReview(t *testing.T, token, movieID string, ratingValue int, comment string) *domain.Review {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/reviews", token, map[string]interface{}{
		"movieId": movieID,
		"rating":  ratingValue,
		"comment": comment,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	review := decodeBody[domain.Review](t, rec)
	return &review
}
