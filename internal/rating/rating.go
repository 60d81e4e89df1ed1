// Package rating holds the pure rating aggregation and movie ranking logic.
package rating

import (
	"errors"
	"fmt"
	"sort"

	"github.com/BicEv/MovieRatings/internal/domain"
)

// Valid review ratings are integers in [MinRating, MaxRating].
const (
	MinRating = 1
	MaxRating = 5
)

// ErrRatingOutOfRange reports a review rating outside [MinRating, MaxRating]
// reaching the engine from a caller that skipped boundary validation.
var ErrRatingOutOfRange = errors.New("rating out of range")

// Average returns the arithmetic mean of the review ratings. An empty review
// set is a normal case and yields 0.0, not an error.
func Average(reviews []*domain.Review) (float64, error) {
	if len(reviews) == 0 {
		return 0, nil
	}
	var sum int
	for _, review := range reviews {
		if review.Rating < MinRating || review.Rating > MaxRating {
			return 0, fmt.Errorf("review %s has rating %d: %w", review.ID, review.Rating, ErrRatingOutOfRange)
		}
		sum += review.Rating
	}
	return float64(sum) / float64(len(reviews)), nil
}

// RankMovies orders movies by their derived rating, highest first. The sort is
// stable: movies with equal ratings keep their relative input order, and
// reviewless movies (rating 0.0) end up after anything with a positive average.
func RankMovies(movies []*domain.Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].Rating > movies[j].Rating
	})
}
