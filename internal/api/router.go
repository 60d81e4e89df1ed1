package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all HTTP routes.
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	apiRouter := router.PathPrefix("/api").Subrouter()

	// Public user endpoints
	usersRouter := apiRouter.PathPrefix("/users").Subrouter()
	usersRouter.HandleFunc("/register", h.RegisterUser).Methods(http.MethodPost)
	usersRouter.HandleFunc("/login", h.LoginUser).Methods(http.MethodPost)
	usersRouter.HandleFunc("/{userId}/reviews", h.GetReviewsByUser).Methods(http.MethodGet)

	// Authenticated lookup by unique key
	emailRouter := usersRouter.PathPrefix("/email").Subrouter()
	emailRouter.Use(h.AuthMiddleware)
	emailRouter.HandleFunc("", h.GetUserByEmail).Methods(http.MethodGet)

	// Authenticated profile endpoints
	meRouter := usersRouter.PathPrefix("/me").Subrouter()
	meRouter.Use(h.AuthMiddleware)
	meRouter.HandleFunc("", h.GetUserProfile).Methods(http.MethodGet)
	meRouter.HandleFunc("", h.UpdateUserProfile).Methods(http.MethodPut)
	meRouter.HandleFunc("", h.DeleteUserProfile).Methods(http.MethodDelete)
	meRouter.HandleFunc("/password", h.ChangePassword).Methods(http.MethodPost)

	// Public movie endpoints
	moviesRouter := apiRouter.PathPrefix("/movies").Subrouter()
	moviesRouter.HandleFunc("", h.GetMovies).Methods(http.MethodGet)
	moviesRouter.HandleFunc("/title/{title}", h.GetMovieByTitle).Methods(http.MethodGet)
	moviesRouter.HandleFunc("/{movieId}", h.GetMovieByID).Methods(http.MethodGet)
	moviesRouter.HandleFunc("/{movieId}/rating", h.GetMovieRating).Methods(http.MethodGet)
	moviesRouter.HandleFunc("/{movieId}/reviews", h.GetReviewsByMovie).Methods(http.MethodGet)

	// Admin-only movie endpoints
	adminMovies := apiRouter.PathPrefix("/movies").Subrouter()
	adminMovies.Use(h.AuthMiddleware, h.RequireAdmin)
	adminMovies.HandleFunc("", h.CreateMovie).Methods(http.MethodPost)
	adminMovies.HandleFunc("/{movieId}", h.UpdateMovie).Methods(http.MethodPut)
	adminMovies.HandleFunc("/{movieId}", h.DeleteMovie).Methods(http.MethodDelete)

	// Review endpoints
	reviewsRouter := apiRouter.PathPrefix("/reviews").Subrouter()
	reviewsRouter.HandleFunc("/{reviewId}", h.GetReviewByID).Methods(http.MethodGet)

	authedReviews := apiRouter.PathPrefix("/reviews").Subrouter()
	authedReviews.Use(h.AuthMiddleware)
	authedReviews.HandleFunc("", h.CreateReview).Methods(http.MethodPost)
	authedReviews.HandleFunc("/{reviewId}", h.UpdateReview).Methods(http.MethodPut)
	authedReviews.HandleFunc("/{reviewId}", h.DeleteReview).Methods(http.MethodDelete)

	return router
}
