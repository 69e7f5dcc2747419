package metadata

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pipocahq/pipoca/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", "pt-BR", slog.New(slog.NewTextHandler(io.Discard, nil)))
	client.baseURL = server.URL
	return client
}

func TestPopularMoviesMapsResults(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "pt-BR", r.URL.Query().Get("language"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Write([]byte(`{"results":[{"id":603,"title":"Matrix","genre_ids":[28],"vote_average":8.2}]}`))
	})

	items, err := client.PopularMovies(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "movie-603", items[0].ID)
	assert.Equal(t, "Matrix", items[0].Title)
	assert.Equal(t, "Ação", items[0].Genre)
}

func TestSearchMultiDropsPeople(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "matrix", r.URL.Query().Get("query"))

		w.Write([]byte(`{"results":[
			{"media_type":"movie","id":603,"title":"Matrix"},
			{"media_type":"person","id":1,"name":"Keanu Reeves"},
			{"media_type":"tv","id":2,"name":"Matrix Documentário"}
		]}`))
	})

	items, err := client.SearchMulti(context.Background(), "matrix")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "movie-603", items[0].ID)
	assert.Equal(t, "tv-2", items[1].ID)
}

func TestSearchShortQuerySkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"results":[]}`))
	})

	items, err := client.SearchMulti(context.Background(), "ma")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Whitespace doesn't count toward the minimum.
	items, err = client.SearchMovies(context.Background(), "  ab  ")
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Zero(t, calls.Load())
}

func TestNonOKStatusIsMetadataUnavailable(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.PopularMovies(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrMetadataUnavailable)
}

func TestUnreachableHostIsMetadataUnavailable(t *testing.T) {
	client := NewClient("k", "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	client.baseURL = "http://127.0.0.1:1"

	_, err := client.PopularTV(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrMetadataUnavailable)
}

func TestMovieDetailsStripsPrefix(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		w.Write([]byte(`{"id":603,"title":"Matrix","runtime":136,"genres":[{"id":878,"name":"Sci-Fi"}]}`))
	})

	item, err := client.MovieDetails(context.Background(), "movie-603")
	require.NoError(t, err)
	assert.Equal(t, "movie-603", item.ID)
	assert.Equal(t, 136, item.Runtime)
	assert.Equal(t, "Sci-Fi", item.Genre)
}
