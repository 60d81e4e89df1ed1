package domain

import (
	"time"
)

// Movie represents a movie entry. Rating is derived from the movie's reviews
// on read and is never persisted; a movie without reviews carries 0.0.
type Movie struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Synopsis    string    `json:"synopsis,omitempty" db:"synopsis"`
	Genre       string    `json:"genre" db:"genre"`
	ReleaseYear int       `json:"releaseYear" db:"release_year"`
	Rating      float64   `json:"rating" db:"-"`
	ReviewIDs   []string  `json:"reviewIds,omitempty" db:"-"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateMovieRequest is the body for movie creation (admin only).
// The release year upper bound is the current calendar year, checked at the
// handler since validator tags cannot express it.
type CreateMovieRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=50"`
	Synopsis    string `json:"synopsis,omitempty" validate:"omitempty,max=255"`
	Genre       string `json:"genre" validate:"required"`
	ReleaseYear int    `json:"releaseYear" validate:"required,gte=1900"`
}

// UpdateMovieRequest updates a movie (admin only). Only the provided fields
// are changed.
type UpdateMovieRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=50"`
	Synopsis    *string `json:"synopsis,omitempty" validate:"omitempty,max=255"`
	Genre       *string `json:"genre,omitempty" validate:"omitempty,min=1"`
	ReleaseYear *int    `json:"releaseYear,omitempty" validate:"omitempty,gte=1900"`
}
