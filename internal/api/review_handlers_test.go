package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/BicEv/MovieRatings/internal/domain"
)

func TestCreateReview(t *testing.T) {
	api := newTestAPI(t)
	admin := api.adminToken(t)
	movie := api.createMovie(t, admin, "Brazil", "Sci-Fi", 1985)
	user, token := api.registerAndLogin(t, "alice@example.com", "alice123")

	review := api.postReview(t, token, movie.ID, 4, "Loved the ducts.")
	require.Equal(t, user.ID, review.UserID)
	require.Equal(t, movie.ID, review.MovieID)
	require.Equal(t, 4, review.Rating)

	rec := api.do(t, http.MethodGet, "/api/reviews/"+review.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateReviewRequiresAuth(t *testing.T) {
	api := newTestAPI(t)
	movie := api.createMovie(t, api.adminToken(t), "Brazil", "Sci-Fi", 1985)

	rec := api.do(t, http.MethodPost, "/api/reviews", "", map[string]interface{}{
		"movieId": movie.ID,
		"rating":  4,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateReviewValidation(t *testing.T) {
	api := newTestAPI(t)
	movie := api.createMovie(t, api.adminToken(t), "Brazil", "Sci-Fi", 1985)
	_, token := api.registerAndLogin(t, "alice@example.com", "alice123")

	rec := api.do(t, http.MethodPost, "/api/reviews", token, map[string]interface{}{
		"movieId": movie.ID,
		"rating":  6,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/reviews", token, map[string]interface{}{
		"movieId": "not-a-uuid",
		"rating":  4,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReviewUnknownMovie(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.registerAndLogin(t, "alice@example.com", "alice123")

	rec := api.do(t, http.MethodPost, "/api/reviews", token, map[string]interface{}{
		"movieId": uuid.NewString(),
		"rating":  4,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReviewDuplicate(t *testing.T) {
	api := newTestAPI(t)
	movie := api.createMovie(t, api.adminToken(t), "Brazil", "Sci-Fi", 1985)
	_, token := api.registerAndLogin(t, "alice@example.com", "alice123")
	api.postReview(t, token, movie.ID, 4, "")

	rec := api.do(t, http.MethodPost, "/api/reviews", token, map[string]interface{}{
		"movieId": movie.ID,
		"rating":  5,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateReviewOwnership(t *testing.T) {
	api := newTestAPI(t)
	movie := api.createMovie(t, api.adminToken(t), "Brazil", "Sci-Fi", 1985)
	_, aliceToken := api.registerAndLogin(t, "alice@example.com", "alice123")
	_, bobToken := api.registerAndLogin(t, "bob@example.com", "bobby123")
	review := api.postReview(t, aliceToken, movie.ID, 4, "Original comment.")

	rec := api.do(t, http.MethodPut, "/api/reviews/"+review.ID, bobToken, map[string]interface{}{
		"rating": 1,
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/reviews/"+review.ID, aliceToken, map[string]interface{}{
		"rating": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[domain.Review](t, rec)
	require.Equal(t, 5, updated.Rating)
	require.Equal(t, "Original comment.", updated.Comment)
}

func TestDeleteReviewOwnership(t *testing.T) {
	api := newTestAPI(t)
	movie := api.createMovie(t, api.adminToken(t), "Brazil", "Sci-Fi", 1985)
	_, aliceToken := api.registerAndLogin(t, "alice@example.com", "alice123")
	_, bobToken := api.registerAndLogin(t, "bob@example.com", "bobby123")
	review := api.postReview(t, aliceToken, movie.ID, 4, "")

	rec := api.do(t, http.MethodDelete, "/api/reviews/"+review.ID, bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/reviews/"+review.ID, aliceToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// A second delete of the same id is a 404, not a 403.
	rec = api.do(t, http.MethodDelete, "/api/reviews/"+review.ID, aliceToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/reviews/"+review.ID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateReviewUnknownID(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.registerAndLogin(t, "alice@example.com", "alice123")

	rec := api.do(t, http.MethodPut, "/api/reviews/"+uuid.NewString(), token, map[string]interface{}{
		"rating": 3,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
