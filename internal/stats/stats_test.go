package stats

import (
	"testing"
	"time"

	"github.com/pipocahq/pipoca/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeFavorites(t *testing.T) {
	favorites := []domain.Item{
		{ID: "m1", Type: domain.MediaTypeMovie, Genre: "Ação"},
		{ID: "m2", Type: domain.MediaTypeMovie, Genre: "Sci-Fi"},
		{ID: "t1", Type: domain.MediaTypeSeries, Genre: "Sci-Fi"},
	}

	s := ComputeFavorites(favorites)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Movies)
	assert.Equal(t, 1, s.Series)
	assert.Equal(t, "Sci-Fi", s.FavoriteGenre)
	// 2 movies at 120 min plus 1 series at 45 min over 8 episodes.
	assert.Equal(t, 600, s.TotalMinutes)
}

func TestComputeFavoritesGenreTieBreak(t *testing.T) {
	// On a tie the first genre to reach the top count wins, not the
	// alphabetically first.
	favorites := []domain.Item{
		{ID: "m1", Type: domain.MediaTypeMovie, Genre: "Terror"},
		{ID: "m2", Type: domain.MediaTypeMovie, Genre: "Ação"},
	}

	s := ComputeFavorites(favorites)
	assert.Equal(t, "Terror", s.FavoriteGenre)
}

func TestComputeFavoritesEmpty(t *testing.T) {
	s := ComputeFavorites(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.TotalMinutes)
	assert.Empty(t, s.FavoriteGenre)
}

func TestComputeReviews(t *testing.T) {
	reviews := []domain.Review{
		{ID: "m1", ItemType: domain.MediaTypeMovie, Rating: 5},
		{ID: "m2", ItemType: domain.MediaTypeMovie, Rating: 4},
		{ID: "t1", ItemType: domain.MediaTypeSeries, Rating: 3},
	}

	s := ComputeReviews(reviews)
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 4.0, s.Average, 0.001)
	assert.Equal(t, 2, s.Movies)
	assert.Equal(t, 1, s.Series)
}

func TestComputeReviewsEmpty(t *testing.T) {
	s := ComputeReviews(nil)
	assert.Zero(t, s.Count)
	assert.Zero(t, s.Average)
}

func TestSortReviewsByDate(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	reviews := []domain.Review{
		{ID: "a", Date: day(1)},
		{ID: "b", Date: day(3)},
		{ID: "c", Date: day(2)},
	}

	out := SortReviewsByDate(reviews)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, "c", out[1].ID)
	assert.Equal(t, "a", out[2].ID)

	// Display sorts never reorder the stored slice.
	assert.Equal(t, "a", reviews[0].ID)
}

func TestSortReviewsByRatingStable(t *testing.T) {
	reviews := []domain.Review{
		{ID: "a", Rating: 3},
		{ID: "b", Rating: 5},
		{ID: "c", Rating: 3},
	}

	out := SortReviewsByRating(reviews)
	assert.Equal(t, "b", out[0].ID)
	// Equal ratings keep their stored relative order.
	assert.Equal(t, "a", out[1].ID)
	assert.Equal(t, "c", out[2].ID)
	assert.Equal(t, "a", reviews[0].ID)
}
