package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pipocahq/pipoca/internal/domain"
	"github.com/pipocahq/pipoca/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockService() *Service {
	return NewService(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPopularMockCatalog(t *testing.T) {
	svc := mockService()
	assert.False(t, svc.Remote())

	items, err := svc.Popular(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.Equal(t, "m1", items[0].ID)

	// The mock catalog is a single page.
	more, err := svc.Popular(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, more)
}

func TestPopularReturnsCopy(t *testing.T) {
	svc := mockService()

	items, err := svc.Popular(context.Background(), 1)
	require.NoError(t, err)
	items[0].Title = "mutated"

	again, err := svc.Popular(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Stranger Things", again[0].Title)
}

func TestSearchMockMatchesTitleGenreDescription(t *testing.T) {
	svc := mockService()
	ctx := context.Background()

	byTitle, err := svc.Search(ctx, "matrix")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Matrix", byTitle[0].Title)

	byGenre, err := svc.Search(ctx, "sci-fi")
	require.NoError(t, err)
	assert.Len(t, byGenre, 3) // Stranger Things, Matrix, Dark

	byDescription, err := svc.Search(ctx, "hacker")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "m3", byDescription[0].ID)

	none, err := svc.Search(ctx, "zzzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchMockEmptyQueryReturnsAll(t *testing.T) {
	svc := mockService()

	items, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, items, 10)
}

func TestDetailsMockReturnsSnapshot(t *testing.T) {
	svc := mockService()

	item, err := svc.Details(context.Background(), MockItems[2])
	require.NoError(t, err)
	assert.Equal(t, MockItems[2], item)
}

func TestDetailsRemotePassesThroughUnprefixedIDs(t *testing.T) {
	// Mock ids carry no movie-/tv- prefix; even with a client configured the
	// snapshot is returned as-is, without a network round trip.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(metadata.NewClient("key", "", logger), logger)
	require.True(t, svc.Remote())

	item, err := svc.Details(context.Background(), MockItems[0])
	require.NoError(t, err)
	assert.Equal(t, MockItems[0], item)
}

func TestFilterByType(t *testing.T) {
	items := []domain.Item{
		{ID: "a", Type: domain.MediaTypeMovie},
		{ID: "b", Type: domain.MediaTypeSeries},
		{ID: "c", Type: domain.MediaTypeMovie},
	}

	assert.Len(t, FilterByType(items, TypeAll), 3)

	movies := FilterByType(items, TypeMovies)
	require.Len(t, movies, 2)
	assert.Equal(t, "a", movies[0].ID)

	series := FilterByType(items, TypeSeries)
	require.Len(t, series, 1)
	assert.Equal(t, "b", series[0].ID)
}

func TestRankByTitlePutsMatchesFirst(t *testing.T) {
	items := []domain.Item{
		{ID: "a", Title: "Duna Parte Dois"},
		{ID: "b", Title: "Oppenheimer"},
		{ID: "c", Title: "Duna"},
	}

	out := rankByTitle(items, "duna")
	require.Len(t, out, 3)
	// Exact-length match ranks ahead of the longer title; the non-match
	// keeps its source position at the end.
	assert.Equal(t, "c", out[0].ID)
	assert.Equal(t, "a", out[1].ID)
	assert.Equal(t, "b", out[2].ID)
}

func TestRankByTitleNoMatchesKeepsOrder(t *testing.T) {
	items := []domain.Item{
		{ID: "a", Title: "Oppenheimer"},
		{ID: "b", Title: "Barbie"},
	}

	out := rankByTitle(items, "xyzw")
	assert.Equal(t, items, out)
}
