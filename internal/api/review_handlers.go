package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/BicEv/MovieRatings/internal/domain"
)

// CreateReview handles POST /api/reviews. The author is the authenticated
// caller.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req domain.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	review, err := h.reviews.Create(ctx, userID, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, review)
}

// GetReviewByID handles GET /api/reviews/{reviewId}.
func (h *Handler) GetReviewByID(w http.ResponseWriter, r *http.Request) {
	review, err := h.reviews.GetByID(r.Context(), mux.Vars(r)["reviewId"])
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, review)
}

// UpdateReview handles PUT /api/reviews/{reviewId}. Only the review's author
// may update it.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	review, err := h.reviews.Update(ctx, mux.Vars(r)["reviewId"], req, userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/reviews/{reviewId}. Only the review's
// author may delete it; a second delete of the same id is a 404.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	if err := h.reviews.Delete(ctx, mux.Vars(r)["reviewId"], userID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusNoContent, nil)
}
