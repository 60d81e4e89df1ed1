package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/BicEv/MovieRatings/internal/domain"
)

// ContextKey is the type for request-context keys set by the middleware.
type ContextKey string

const (
	// UserIDKey holds the authenticated user's id.
	UserIDKey ContextKey = "userID"
	// UserRoleKey holds the authenticated user's role string.
	UserRoleKey ContextKey = "userRole"
)

// AuthMiddleware validates the bearer token from the Authorization header and
// puts the caller's id and role into the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.respondError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			h.respondError(w, r, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		claims, err := h.tokenManager.Validate(parts[1])
		if err != nil {
			h.logger.WarnContext(r.Context(), "Invalid or expired token", slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin allows the request through only when the authenticated caller
// carries the ADMIN role. Must run after AuthMiddleware.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roleStr, _ := r.Context().Value(UserRoleKey).(string)
		role, err := domain.ParseRole(roleStr)
		if err != nil || role != domain.RoleAdmin {
			h.respondError(w, r, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// callerID extracts the authenticated user's id from the request context.
func (h *Handler) callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok || userID == "" {
		h.logger.ErrorContext(r.Context(), "UserID not found in request context after AuthMiddleware")
		h.respondError(w, r, http.StatusInternalServerError, "Error processing user identity")
		return "", false
	}
	return userID, true
}
