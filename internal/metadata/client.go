// Package metadata fetches normalized movie/series items from TMDB. The
// collection store only ever consumes the resolved item lists; retry and
// caching are the caller's concern.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pipocahq/pipoca/internal/domain"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	defaultTimeout = 30 * time.Second

	// MinQueryLength mirrors the search contract: shorter terms return an
	// empty result without hitting the network.
	MinQueryLength = 3
)

// Client is a TMDB API client.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a TMDB client. Language defaults to pt-BR.
func NewClient(apiKey, language string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if language == "" {
		language = "pt-BR"
	}
	return &Client{
		baseURL:  defaultBaseURL,
		apiKey:   apiKey,
		language: language,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// PopularMovies fetches a page of popular movies.
func (c *Client) PopularMovies(ctx context.Context, page int) ([]domain.Item, error) {
	var out moviePage
	if err := c.get(ctx, "/movie/popular", pageQuery(page), &out); err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(out.Results))
	for _, m := range out.Results {
		items = append(items, mapMovie(m))
	}
	return items, nil
}

// PopularTV fetches a page of popular series.
func (c *Client) PopularTV(ctx context.Context, page int) ([]domain.Item, error) {
	var out tvPage
	if err := c.get(ctx, "/tv/popular", pageQuery(page), &out); err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(out.Results))
	for _, t := range out.Results {
		items = append(items, mapTV(t))
	}
	return items, nil
}

// SearchMovies searches movies by title. Queries under MinQueryLength
// return an empty list without any request.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]domain.Item, error) {
	if tooShort(query) {
		return nil, nil
	}
	var out moviePage
	if err := c.get(ctx, "/search/movie", searchQuery(query), &out); err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(out.Results))
	for _, m := range out.Results {
		items = append(items, mapMovie(m))
	}
	return items, nil
}

// SearchTV searches series by title.
func (c *Client) SearchTV(ctx context.Context, query string) ([]domain.Item, error) {
	if tooShort(query) {
		return nil, nil
	}
	var out tvPage
	if err := c.get(ctx, "/search/tv", searchQuery(query), &out); err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(out.Results))
	for _, t := range out.Results {
		items = append(items, mapTV(t))
	}
	return items, nil
}

// SearchMulti searches movies and series together, dropping other media
// types (people, collections).
func (c *Client) SearchMulti(ctx context.Context, query string) ([]domain.Item, error) {
	if tooShort(query) {
		return nil, nil
	}
	var out multiPage
	if err := c.get(ctx, "/search/multi", searchQuery(query), &out); err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(out.Results))
	for _, r := range out.Results {
		if item, ok := mapMulti(r); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// MovieDetails fetches one movie by its prefixed id ("movie-603" or "603").
func (c *Client) MovieDetails(ctx context.Context, id string) (domain.Item, error) {
	numeric := strings.TrimPrefix(id, "movie-")
	var out movieResult
	if err := c.get(ctx, "/movie/"+url.PathEscape(numeric), nil, &out); err != nil {
		return domain.Item{}, err
	}
	return mapMovie(out), nil
}

// TVDetails fetches one series by its prefixed id ("tv-66732" or "66732").
func (c *Client) TVDetails(ctx context.Context, id string) (domain.Item, error) {
	numeric := strings.TrimPrefix(id, "tv-")
	var out tvResult
	if err := c.get(ctx, "/tv/"+url.PathEscape(numeric), nil, &out); err != nil {
		return domain.Item{}, err
	}
	return mapTV(out), nil
}

// get performs an authenticated GET and decodes the JSON response into dest.
func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return domain.ErrMetadataUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", domain.ErrMetadataUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": []string{strconv.Itoa(page)}}
}

func searchQuery(query string) url.Values {
	return url.Values{
		"query": []string{query},
		"page":  []string{"1"},
	}
}

func tooShort(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLength
}
