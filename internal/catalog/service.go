// Package catalog serves the browsable title list: the bundled mock items
// when no TMDB key is configured, the live TMDB catalog otherwise. It also
// provides the local filtering used by the UI.
package catalog

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pipocahq/pipoca/internal/domain"
	"github.com/pipocahq/pipoca/internal/metadata"
)

// TypeFilter selects which kinds of items to show.
type TypeFilter int

const (
	TypeAll TypeFilter = iota
	TypeMovies
	TypeSeries
)

// Service loads catalog items and filters them locally.
type Service struct {
	client *metadata.Client // nil = mock catalog only
	logger *slog.Logger
}

// NewService creates a catalog service. A nil client serves the bundled
// mock catalog.
func NewService(client *metadata.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, logger: logger}
}

// Remote reports whether the service is backed by the metadata source.
func (s *Service) Remote() bool { return s.client != nil }

// Popular returns a page of catalog items: popular movies and series from
// the metadata source, or the mock catalog in mock mode (single page).
func (s *Service) Popular(ctx context.Context, page int) ([]domain.Item, error) {
	if s.client == nil {
		if page > 1 {
			return nil, nil
		}
		return append([]domain.Item(nil), MockItems...), nil
	}

	movies, err := s.client.PopularMovies(ctx, page)
	if err != nil {
		return nil, err
	}
	series, err := s.client.PopularTV(ctx, page)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("loaded popular titles", "page", page, "movies", len(movies), "series", len(series))
	return append(movies, series...), nil
}

// Search queries the metadata source (movies and series together) and ranks
// the results by title match. In mock mode it filters the bundled catalog.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Item, error) {
	query = strings.TrimSpace(query)
	if s.client == nil {
		return filterMock(query), nil
	}

	results, err := s.client.SearchMulti(ctx, query)
	if err != nil {
		return nil, err
	}
	ranked := rankByTitle(results, query)
	s.logger.Debug("search complete", "query", query, "results", len(ranked))
	return ranked, nil
}

// Details resolves the full record for an item: the metadata source's detail
// endpoints in remote mode (runtime, season/episode counts), the stored
// snapshot otherwise. Mock ids pass through unchanged in either mode.
func (s *Service) Details(ctx context.Context, item domain.Item) (domain.Item, error) {
	if s.client == nil {
		return item, nil
	}
	switch {
	case strings.HasPrefix(item.ID, "movie-"):
		return s.client.MovieDetails(ctx, item.ID)
	case strings.HasPrefix(item.ID, "tv-"):
		return s.client.TVDetails(ctx, item.ID)
	default:
		return item, nil
	}
}

// filterMock matches the mock catalog on title, genre or description,
// case-insensitively, the way the suggestions list always has.
func filterMock(query string) []domain.Item {
	if query == "" {
		return append([]domain.Item(nil), MockItems...)
	}
	q := strings.ToLower(query)
	var out []domain.Item
	for _, item := range MockItems {
		if strings.Contains(strings.ToLower(item.Title), q) ||
			strings.Contains(strings.ToLower(item.Genre), q) ||
			strings.Contains(strings.ToLower(item.Description), q) {
			out = append(out, item)
		}
	}
	return out
}

// rankByTitle orders items by fuzzy title match quality, best first.
func rankByTitle(items []domain.Item, query string) []domain.Item {
	if len(items) == 0 || query == "" {
		return items
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}

	ranks := fuzzy.RankFindFold(query, titles)
	if len(ranks) == 0 {
		// Nothing matched fuzzily; keep the source order.
		return items
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	matched := make(map[int]bool, len(ranks))
	out := make([]domain.Item, 0, len(items))
	for _, r := range ranks {
		out = append(out, items[r.OriginalIndex])
		matched[r.OriginalIndex] = true
	}
	// Unmatched items go after the ranked ones, source order preserved.
	for i, item := range items {
		if !matched[i] {
			out = append(out, item)
		}
	}
	return out
}

// FilterByType narrows items to movies or series.
func FilterByType(items []domain.Item, filter TypeFilter) []domain.Item {
	if filter == TypeAll {
		return items
	}
	want := domain.MediaTypeMovie
	if filter == TypeSeries {
		want = domain.MediaTypeSeries
	}
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item.Type == want {
			out = append(out, item)
		}
	}
	return out
}
