// Package api exposes the JSON HTTP surface of the application.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/BicEv/MovieRatings/internal/domain"
	"github.com/BicEv/MovieRatings/internal/rating"
	"github.com/BicEv/MovieRatings/internal/service"
	"github.com/BicEv/MovieRatings/internal/store"
	"github.com/BicEv/MovieRatings/pkg/auth"
)

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	users        *service.UserService
	movies       *service.MovieService
	reviews      *service.ReviewService
	logger       *slog.Logger
	validator    *validator.Validate
	tokenManager auth.TokenManager
}

func NewHandler(users *service.UserService, movies *service.MovieService, reviews *service.ReviewService,
	logger *slog.Logger, v *validator.Validate, tm auth.TokenManager) *Handler {
	return &Handler{
		users:        users,
		movies:       movies,
		reviews:      reviews,
		logger:       logger,
		validator:    v,
		tokenManager: tm,
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// respondServiceError maps the error kinds raised by the services to HTTP
// statuses: NotFound to 404, Duplicate to 409, AccessDenied to 403, invalid
// input to 400, anything unrecognized to 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrMovieNotFound),
		errors.Is(err, store.ErrReviewNotFound):
		h.respondError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrUserAlreadyExists),
		errors.Is(err, store.ErrMovieAlreadyExists),
		errors.Is(err, store.ErrDuplicateReview):
		h.respondError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		h.respondError(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, rating.ErrRatingOutOfRange):
		h.respondError(w, r, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Unhandled service error", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		h.respondError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
