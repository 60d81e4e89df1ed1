package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/BicEv/MovieRatings/internal/domain"
	"github.com/BicEv/MovieRatings/internal/service"
)

// RegisterUser handles POST /api/users/register.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.users.Register(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, user)
}

// LoginUser handles POST /api/users/login.
func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			h.respondError(w, r, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.respondServiceError(w, r, err)
		return
	}

	token, err := h.tokenManager.Generate(user.ID, string(user.Role))
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to generate JWT token", slog.String("userID", user.ID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Login failed (token generation)")
		return
	}

	h.respondJSON(w, r, http.StatusOK, domain.LoginResponse{User: user, Token: token})
}

// GetUserProfile handles GET /api/users/me.
func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

// UpdateUserProfile handles PUT /api/users/me.
func (h *Handler) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.users.UpdateProfile(ctx, userID, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

// ChangePassword handles POST /api/users/me/password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req domain.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.users.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusNoContent, nil)
}

// DeleteUserProfile handles DELETE /api/users/me. The user's reviews are
// removed along with the account.
func (h *Handler) DeleteUserProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(ctx, userID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusNoContent, nil)
}

// GetUserByEmail handles GET /api/users/email?email=...
func (h *Handler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.respondError(w, r, http.StatusBadRequest, "email query parameter is required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

// GetReviewsByUser handles GET /api/users/{userId}/reviews.
func (h *Handler) GetReviewsByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mux.Vars(r)["userId"]

	if _, err := h.users.GetByID(ctx, userID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	reviews, err := h.reviews.ListByUser(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, reviews)
}
