// Package stats computes aggregate views over the favorites and reviews
// collections. Everything here is pure: collections in, snapshot out.
package stats

import (
	"sort"

	"github.com/pipocahq/pipoca/internal/domain"
)

// Watch-time heuristic: a flat per-movie runtime and a fixed
// episodes-per-series estimate. A deliberate approximation, kept as-is.
const (
	movieMinutes         = 120
	seriesEpisodeMinutes = 45
	seriesEpisodeCount   = 8
)

// Favorites summarizes the favorites collection.
type Favorites struct {
	Total         int
	Movies        int
	Series        int
	FavoriteGenre string // most frequent genre; ties go to the first encountered
	TotalMinutes  int    // estimated watch time
}

// ComputeFavorites derives favorite aggregates. The genre tie-break follows
// first-encountered order in the collection, not alphabetical order.
func ComputeFavorites(favorites []domain.Item) Favorites {
	var out Favorites
	out.Total = len(favorites)

	counts := make(map[string]int)
	best := 0
	for _, item := range favorites {
		switch item.Type {
		case domain.MediaTypeMovie:
			out.Movies++
		case domain.MediaTypeSeries:
			out.Series++
		}
		counts[item.Genre]++
		if counts[item.Genre] > best {
			best = counts[item.Genre]
			out.FavoriteGenre = item.Genre
		}
	}

	out.TotalMinutes = out.Movies*movieMinutes + out.Series*seriesEpisodeMinutes*seriesEpisodeCount
	return out
}

// Reviews summarizes the reviews collection.
type Reviews struct {
	Count   int
	Average float64 // 0 when there are no reviews
	Movies  int
	Series  int
}

// ComputeReviews derives review aggregates.
func ComputeReviews(reviews []domain.Review) Reviews {
	var out Reviews
	out.Count = len(reviews)
	if out.Count == 0 {
		return out
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		switch r.ItemType {
		case domain.MediaTypeMovie:
			out.Movies++
		case domain.MediaTypeSeries:
			out.Series++
		}
	}
	out.Average = float64(sum) / float64(out.Count)
	return out
}

// SortReviewsByDate returns a copy sorted newest first. The stored order is
// never mutated by a display sort.
func SortReviewsByDate(reviews []domain.Review) []domain.Review {
	out := make([]domain.Review, len(reviews))
	copy(out, reviews)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// SortReviewsByRating returns a copy sorted highest rated first.
func SortReviewsByRating(reviews []domain.Review) []domain.Review {
	out := make([]domain.Review, len(reviews))
	copy(out, reviews)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}
