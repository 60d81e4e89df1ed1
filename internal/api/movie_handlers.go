package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/BicEv/MovieRatings/internal/domain"
)

// CreateMovie handles POST /api/movies (admin only).
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if currentYear := time.Now().Year(); req.ReleaseYear > currentYear {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("Release year must be between 1900 and %d", currentYear))
		return
	}

	movie, err := h.movies.Create(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, movie)
}

// GetMovies handles GET /api/movies: the full collection ordered by average
// rating, highest first.
func (h *Handler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movies.ListRankedByRating(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, movies)
}

// GetMovieByID handles GET /api/movies/{movieId}.
func (h *Handler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movie, err := h.movies.GetByID(r.Context(), mux.Vars(r)["movieId"])
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, movie)
}

// GetMovieByTitle handles GET /api/movies/title/{title}.
func (h *Handler) GetMovieByTitle(w http.ResponseWriter, r *http.Request) {
	movie, err := h.movies.GetByTitle(r.Context(), mux.Vars(r)["title"])
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, movie)
}

// GetMovieRating handles GET /api/movies/{movieId}/rating.
func (h *Handler) GetMovieRating(w http.ResponseWriter, r *http.Request) {
	agg, err := h.movies.AggregatedRating(r.Context(), mux.Vars(r)["movieId"])
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, agg)
}

// GetReviewsByMovie handles GET /api/movies/{movieId}/reviews.
func (h *Handler) GetReviewsByMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := mux.Vars(r)["movieId"]

	if _, err := h.movies.GetByID(ctx, movieID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	reviews, err := h.reviews.ListByMovie(ctx, movieID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, reviews)
}

// UpdateMovie handles PUT /api/movies/{movieId} (admin only).
func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if currentYear := time.Now().Year(); req.ReleaseYear != nil && *req.ReleaseYear > currentYear {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("Release year must be between 1900 and %d", currentYear))
		return
	}

	movie, err := h.movies.Update(ctx, mux.Vars(r)["movieId"], req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, movie)
}

// DeleteMovie handles DELETE /api/movies/{movieId} (admin only). The movie's
// reviews are removed along with it.
func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := h.movies.Delete(r.Context(), mux.Vars(r)["movieId"]); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusNoContent, nil)
}
