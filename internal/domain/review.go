package domain

import (
	"time"
)

// Review is a single user's rating and optional comment for one movie.
// The author and subject associations are immutable after creation.
type Review struct {
	ID        string    `json:"id" db:"id"`
	MovieID   string    `json:"movieId" db:"movie_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateReviewRequest is the body for posting a review. The author comes from
// the authenticated caller, not the payload.
type CreateReviewRequest struct {
	MovieID string `json:"movieId" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

// UpdateReviewRequest updates a review's rating and/or comment. Only the
// provided fields are changed.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

// AggregatedRating is the averaged rating of one movie.
type AggregatedRating struct {
	MovieID       string  `json:"movieId" db:"movie_id"`
	AverageRating float64 `json:"averageRating" db:"average_rating"`
	RatingCount   int64   `json:"ratingCount" db:"rating_count"`
}
