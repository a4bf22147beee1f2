package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movielist/pkg/models"
)

// fakeAPI records every call and its arguments so tests can assert exactly
// what the composer requested upstream.
type fakeAPI struct {
	searchResults []models.Movie
	searchErr     error
	genres        []models.Genre
	genresErr     error
	details       models.Movie
	detailsErr    error
	discovered    []models.Movie
	discoverErr   error

	calls           []string
	searchedTitle   string
	includeArg      []int64
	excludeArg      []int64
	detailsID       int64
	runtimeMin      int
	runtimeMax      int
}

func (f *fakeAPI) Popular(ctx context.Context) ([]models.Movie, error) {
	f.calls = append(f.calls, "popular")
	return nil, nil
}

func (f *fakeAPI) Search(ctx context.Context, title string) ([]models.Movie, error) {
	f.calls = append(f.calls, "search")
	f.searchedTitle = title
	return f.searchResults, f.searchErr
}

func (f *fakeAPI) Genres(ctx context.Context) ([]models.Genre, error) {
	f.calls = append(f.calls, "genres")
	return f.genres, f.genresErr
}

func (f *fakeAPI) Details(ctx context.Context, movieID int64) (models.Movie, error) {
	f.calls = append(f.calls, "details")
	f.detailsID = movieID
	return f.details, f.detailsErr
}

func (f *fakeAPI) DiscoverByGenres(ctx context.Context, include, exclude []int64) ([]models.Movie, error) {
	f.calls = append(f.calls, "discover_genres")
	f.includeArg = include
	f.excludeArg = exclude
	return f.discovered, f.discoverErr
}

func (f *fakeAPI) DiscoverByRuntime(ctx context.Context, minMinutes, maxMinutes int) ([]models.Movie, error) {
	f.calls = append(f.calls, "discover_runtime")
	f.runtimeMin = minMinutes
	f.runtimeMax = maxMinutes
	return f.discovered, f.discoverErr
}

func intPtr(n int) *int { return &n }

func TestSameGenres(t *testing.T) {
	fake := &fakeAPI{
		searchResults: []models.Movie{
			{ID: 603, Title: "The Matrix", GenreIDs: []int64{28, 878}},
			{ID: 604, Title: "The Matrix Reloaded", GenreIDs: []int64{28}},
		},
		genres: []models.Genre{
			{ID: 28, Name: "Action"},
			{ID: 35, Name: "Comedy"},
			{ID: 18, Name: "Drama"},
			{ID: 878, Name: "Science Fiction"},
		},
		discovered: []models.Movie{{ID: 1}, {ID: 2}},
	}
	c := NewComposer(fake)

	got, err := c.SameGenres(context.Background(), "The Matrix")
	require.NoError(t, err)
	assert.Equal(t, fake.discovered, got)

	assert.Equal(t, "The Matrix", fake.searchedTitle)
	// rank 0 of the search is authoritative for the inclusion set
	assert.Equal(t, []int64{28, 878}, fake.includeArg)
	assert.Equal(t, []int64{35, 18}, fake.excludeArg)
	assert.Equal(t, []string{"search", "genres", "discover_genres"}, fake.calls)
}

func TestSameGenresTitleNotFound(t *testing.T) {
	fake := &fakeAPI{}
	c := NewComposer(fake)

	_, err := c.SameGenres(context.Background(), "No Such Movie")
	assert.ErrorIs(t, err, ErrNotFound)

	// not-found comes only from the empty search; no further calls are made
	assert.Equal(t, []string{"search"}, fake.calls)
}

func TestSameGenresUpstreamFailureIsNotNotFound(t *testing.T) {
	fake := &fakeAPI{searchErr: &UpstreamError{StatusCode: 503, Body: "down"}}
	c := NewComposer(fake)

	_, err := c.SameGenres(context.Background(), "The Matrix")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 503, ue.StatusCode)
}

func TestSameGenresGenreFetchFailureAborts(t *testing.T) {
	fake := &fakeAPI{
		searchResults: []models.Movie{{ID: 603, GenreIDs: []int64{28}}},
		genresErr:     &UpstreamError{StatusCode: 500},
	}
	c := NewComposer(fake)

	_, err := c.SameGenres(context.Background(), "The Matrix")
	require.Error(t, err)
	assert.NotContains(t, fake.calls, "discover_genres")
}

func TestSimilarRuntimeRequestsTenMinuteWindow(t *testing.T) {
	fake := &fakeAPI{
		searchResults: []models.Movie{{ID: 603, Title: "The Matrix"}},
		details:       models.Movie{ID: 603, Runtime: intPtr(136)},
		discovered:    []models.Movie{{ID: 603}, {ID: 9}},
	}
	c := NewComposer(fake)

	got, err := c.SimilarRuntime(context.Background(), "The Matrix")
	require.NoError(t, err)

	assert.Equal(t, int64(603), fake.detailsID)
	assert.Equal(t, 126, fake.runtimeMin)
	assert.Equal(t, 146, fake.runtimeMax)
	// the queried movie may appear in its own result set
	assert.Equal(t, fake.discovered, got)
}

func TestSimilarRuntimeShortFilmAllowsNegativeLowerBound(t *testing.T) {
	fake := &fakeAPI{
		searchResults: []models.Movie{{ID: 7}},
		details:       models.Movie{ID: 7, Runtime: intPtr(5)},
	}
	c := NewComposer(fake)

	_, err := c.SimilarRuntime(context.Background(), "Short")
	require.NoError(t, err)
	assert.Equal(t, -5, fake.runtimeMin)
	assert.Equal(t, 15, fake.runtimeMax)
}

func TestSimilarRuntimeMissingRuntimeIsNotFound(t *testing.T) {
	fake := &fakeAPI{
		searchResults: []models.Movie{{ID: 7}},
		details:       models.Movie{ID: 7}, // no runtime data
	}
	c := NewComposer(fake)

	_, err := c.SimilarRuntime(context.Background(), "The Matrix")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotContains(t, fake.calls, "discover_runtime")
}

func TestSimilarRuntimeEmptySearchIsNotFound(t *testing.T) {
	fake := &fakeAPI{}
	c := NewComposer(fake)

	_, err := c.SimilarRuntime(context.Background(), "No Such Movie")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"search"}, fake.calls)
}

func TestSimilarRuntimeDetailFailureAborts(t *testing.T) {
	fake := &fakeAPI{
		searchResults: []models.Movie{{ID: 7}},
		detailsErr:    &UpstreamError{StatusCode: 500, Body: "boom"},
	}
	c := NewComposer(fake)

	_, err := c.SimilarRuntime(context.Background(), "The Matrix")
	require.Error(t, err)
	assert.True(t, errors.As(err, new(*UpstreamError)))
}
