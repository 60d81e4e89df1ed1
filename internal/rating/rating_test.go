package rating

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BicEv/MovieRatings/internal/domain"
)

func reviewsWithRatings(ratings ...int) []*domain.Review {
	reviews := make([]*domain.Review, 0, len(ratings))
	for i, r := range ratings {
		reviews = append(reviews, &domain.Review{ID: string(rune('a' + i)), Rating: r})
	}
	return reviews
}

func TestAverage(t *testing.T) {
	avg, err := Average(reviewsWithRatings(5, 3, 2))
	require.NoError(t, err)
	require.InDelta(t, 3.3333, avg, 0.01)
}

func TestAverageSingleReview(t *testing.T) {
	avg, err := Average(reviewsWithRatings(4))
	require.NoError(t, err)
	require.Equal(t, 4.0, avg)
}

func TestAverageEmptyIsZeroNotError(t *testing.T) {
	avg, err := Average(nil)
	require.NoError(t, err)
	require.Equal(t, 0.0, avg)

	avg, err = Average([]*domain.Review{})
	require.NoError(t, err)
	require.Equal(t, 0.0, avg)
}

func TestAverageBoundaryRatings(t *testing.T) {
	avg, err := Average(reviewsWithRatings(1, 5))
	require.NoError(t, err)
	require.Equal(t, 3.0, avg)
}

func TestAverageOutOfRange(t *testing.T) {
	_, err := Average(reviewsWithRatings(3, 0))
	require.ErrorIs(t, err, ErrRatingOutOfRange)

	_, err = Average(reviewsWithRatings(6))
	require.ErrorIs(t, err, ErrRatingOutOfRange)
}

func TestRankMoviesDescending(t *testing.T) {
	movies := []*domain.Movie{
		{Title: "A", Rating: 4.0},
		{Title: "B", Rating: 3.5},
		{Title: "C", Rating: 5.0},
	}
	RankMovies(movies)

	require.Equal(t, "C", movies[0].Title)
	require.Equal(t, "A", movies[1].Title)
	require.Equal(t, "B", movies[2].Title)
}

func TestRankMoviesStableOnTies(t *testing.T) {
	movies := []*domain.Movie{
		{Title: "First", Rating: 0.0},
		{Title: "Rated", Rating: 2.0},
		{Title: "Second", Rating: 0.0},
		{Title: "Third", Rating: 0.0},
	}
	RankMovies(movies)

	// The rated movie comes first; reviewless movies keep their input order.
	require.Equal(t, "Rated", movies[0].Title)
	require.Equal(t, "First", movies[1].Title)
	require.Equal(t, "Second", movies[2].Title)
	require.Equal(t, "Third", movies[3].Title)
}
