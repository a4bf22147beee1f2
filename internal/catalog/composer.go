package catalog

import (
	"context"
	"fmt"

	"movielist/pkg/models"
)

// runtimeWindow is the half-width, in minutes, of the similar-runtime
// interval. The lower bound is not clamped: a runtime below 10 yields a
// negative minimum which is passed to the catalog unchanged.
const runtimeWindow = 10

// Composer answers derived queries the catalog cannot answer directly by
// chaining multiple catalog calls. Every workflow is read-only and
// idempotent; calls run strictly sequentially because each step depends on
// the previous result.
type Composer struct {
	api API
}

func NewComposer(api API) *Composer {
	return &Composer{api: api}
}

// SameGenres returns movies sharing every genre with the best search match
// for title. Rank 0 of the catalog's relevance order is authoritative; no
// disambiguation of same-titled movies is attempted. An empty search is
// ErrNotFound; any upstream failure aborts the whole workflow.
func (c *Composer) SameGenres(ctx context.Context, title string) ([]models.Movie, error) {
	candidates, err := c.api.Search(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", title, err)
	}
	if len(candidates) == 0 {
		return nil, ErrNotFound
	}
	include := candidates[0].GenreIDs

	all, err := c.api.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch genre list: %w", err)
	}
	exclude := GenresToExclude(all, include)

	movies, err := c.api.DiscoverByGenres(ctx, include, exclude)
	if err != nil {
		return nil, fmt.Errorf("discover by genres: %w", err)
	}
	return movies, nil
}

// SimilarRuntime returns movies whose runtime is within 10 minutes of the
// best search match for title. A movie without runtime data is ErrNotFound:
// it exists, but this query cannot be served for it. The result is not
// deduplicated, so the queried movie may appear in its own result set.
func (c *Composer) SimilarRuntime(ctx context.Context, title string) ([]models.Movie, error) {
	candidates, err := c.api.Search(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", title, err)
	}
	if len(candidates) == 0 {
		return nil, ErrNotFound
	}

	details, err := c.api.Details(ctx, candidates[0].ID)
	if err != nil {
		return nil, fmt.Errorf("fetch details for %d: %w", candidates[0].ID, err)
	}
	if details.Runtime == nil {
		return nil, ErrNotFound
	}

	r := *details.Runtime
	movies, err := c.api.DiscoverByRuntime(ctx, r-runtimeWindow, r+runtimeWindow)
	if err != nil {
		return nil, fmt.Errorf("discover by runtime: %w", err)
	}
	return movies, nil
}
