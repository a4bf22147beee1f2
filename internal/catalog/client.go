package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movielist/pkg/models"
)

// API is the catalog surface the rest of the system depends on. *Client is
// the real implementation; tests substitute fakes that capture arguments.
type API interface {
	Popular(ctx context.Context) ([]models.Movie, error)
	Search(ctx context.Context, title string) ([]models.Movie, error)
	Genres(ctx context.Context) ([]models.Genre, error)
	Details(ctx context.Context, movieID int64) (models.Movie, error)
	DiscoverByGenres(ctx context.Context, include, exclude []int64) ([]models.Movie, error)
	DiscoverByRuntime(ctx context.Context, minMinutes, maxMinutes int) ([]models.Movie, error)
}

// Client talks to the external movie catalog (TMDB-shaped) over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a catalog client. The API key is sent verbatim in the
// Authorization header. Every call is bounded by a fixed 5s timeout.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

var _ API = (*Client)(nil)

type resultsResponse struct {
	Results []models.Movie `json:"results"`
}

type genresResponse struct {
	Genres []models.Genre `json:"genres"`
}

func (c *Client) Popular(ctx context.Context) ([]models.Movie, error) {
	var resp resultsResponse
	if err := c.get(ctx, "/movie/popular", nil, &resp); err != nil {
		return nil, err
	}
	return cleanMovies(resp.Results), nil
}

func (c *Client) Search(ctx context.Context, title string) ([]models.Movie, error) {
	q := url.Values{}
	q.Set("query", title)

	var resp resultsResponse
	if err := c.get(ctx, "/search/movie", q, &resp); err != nil {
		return nil, err
	}
	return cleanMovies(resp.Results), nil
}

func (c *Client) Genres(ctx context.Context) ([]models.Genre, error) {
	var resp genresResponse
	if err := c.get(ctx, "/genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// Details returns the full movie record, runtime included. An unknown id is
// ErrNotFound; any other non-success is an *UpstreamError.
func (c *Client) Details(ctx context.Context, movieID int64) (models.Movie, error) {
	var m models.Movie
	err := c.get(ctx, "/movie/"+strconv.FormatInt(movieID, 10), nil, &m)
	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound {
			return models.Movie{}, ErrNotFound
		}
		return models.Movie{}, err
	}
	if m.ReleaseDate != nil && *m.ReleaseDate == "" {
		m.ReleaseDate = nil
	}
	return m, nil
}

func (c *Client) DiscoverByGenres(ctx context.Context, include, exclude []int64) ([]models.Movie, error) {
	q := url.Values{}
	q.Set("with_genres", joinIDs(include))
	q.Set("without_genres", joinIDs(exclude))

	var resp resultsResponse
	if err := c.get(ctx, "/discover/movie", q, &resp); err != nil {
		return nil, err
	}
	return cleanMovies(resp.Results), nil
}

func (c *Client) DiscoverByRuntime(ctx context.Context, minMinutes, maxMinutes int) ([]models.Movie, error) {
	q := url.Values{}
	q.Set("with_runtime.gte", strconv.Itoa(minMinutes))
	q.Set("with_runtime.lte", strconv.Itoa(maxMinutes))

	var resp resultsResponse
	if err := c.get(ctx, "/discover/movie", q, &resp); err != nil {
		return nil, err
	}
	return cleanMovies(resp.Results), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("language", "en-US")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response %s: %w", path, err)
	}
	return nil
}

// cleanMovies normalizes empty release dates to nil so that the JSON we
// serve carries null instead of "".
func cleanMovies(ms []models.Movie) []models.Movie {
	for i := range ms {
		if ms[i].ReleaseDate != nil && *ms[i].ReleaseDate == "" {
			ms[i].ReleaseDate = nil
		}
	}
	return ms
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
