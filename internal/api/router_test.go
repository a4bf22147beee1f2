package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movielist/internal/auth"
	"movielist/internal/feed"
	"movielist/internal/testfixtures"
	"movielist/pkg/models"
)

type stubCatalog struct{}

func (stubCatalog) Popular(ctx context.Context) ([]models.Movie, error) {
	return []models.Movie{{ID: 1, Title: "Popular One"}, {ID: 2, Title: "Popular Two"}}, nil
}
func (stubCatalog) Search(ctx context.Context, title string) ([]models.Movie, error) {
	return nil, nil
}
func (stubCatalog) Genres(ctx context.Context) ([]models.Genre, error) { return nil, nil }
func (stubCatalog) Details(ctx context.Context, movieID int64) (models.Movie, error) {
	return models.Movie{ID: movieID, Title: "Some Movie"}, nil
}
func (stubCatalog) DiscoverByGenres(ctx context.Context, include, exclude []int64) ([]models.Movie, error) {
	return nil, nil
}
func (stubCatalog) DiscoverByRuntime(ctx context.Context, minMinutes, maxMinutes int) ([]models.Movie, error) {
	return nil, nil
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	return NewRouter(Deps{
		DB:      testfixtures.NewDB(t),
		Catalog: stubCatalog{},
		Tokens: auth.TokenService{
			Secret:   []byte("test-secret"),
			Issuer:   "movielist-test",
			Duration: 3 * time.Hour,
		},
		Hub: feed.NewHub(),
	})
}

func request(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEndToEndFavoritesFlow(t *testing.T) {
	r := testRouter(t)

	// register
	w := request(r, http.MethodPost, "/user", `{"username":"alice","password":"pw123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// duplicate registration
	w = request(r, http.MethodPost, "/user", `{"username":"alice","password":"pw123"}`, "")
	require.Equal(t, http.StatusConflict, w.Code)

	// login with the right password
	w = request(r, http.MethodPost, "/login", `{"username":"alice","password":"pw123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Token)
	token := loginResp.Token

	// login with the wrong password
	w = request(r, http.MethodPost, "/login", `{"username":"alice","password":"wrongpw"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// favorites require a token
	w = request(r, http.MethodGet, "/movies/favorite", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// add favorite 42
	w = request(r, http.MethodPost, "/movies/favorite/42", "", token)
	require.Equal(t, http.StatusCreated, w.Code)

	// list contains 42
	w = request(r, http.MethodGet, "/movies/favorite", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":42`)

	// remove 42
	w = request(r, http.MethodDelete, "/movies/favorite/42", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	// list is empty again
	w = request(r, http.MethodGet, "/movies/favorite", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"id":42`)
}

func TestMoviesRequireAuth(t *testing.T) {
	r := testRouter(t)

	for _, path := range []string{
		"/movies/most_popular/3",
		"/movies/same_genres/TheMatrix",
		"/movies/similar_runtime/TheMatrix",
		"/movies/TheMatrix",
	} {
		w := request(r, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "path=%s", path)
	}
}

func TestMostPopularThroughRouter(t *testing.T) {
	r := testRouter(t)

	w := request(r, http.MethodPost, "/user", `{"username":"bob","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = request(r, http.MethodPost, "/login", `{"username":"bob","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))

	w = request(r, http.MethodGet, "/movies/most_popular/2", "", loginResp.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Popular One")
	assert.Contains(t, w.Body.String(), "Popular Two")
}

func TestDeleteAccount(t *testing.T) {
	r := testRouter(t)

	w := request(r, http.MethodPost, "/user", `{"username":"carol","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = request(r, http.MethodPost, "/login", `{"username":"carol","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))

	w = request(r, http.MethodDelete, "/user", "", loginResp.Token)
	require.Equal(t, http.StatusOK, w.Code)

	// the account is gone
	w = request(r, http.MethodPost, "/login", `{"username":"carol","password":"pw"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthAndWelcome(t *testing.T) {
	r := testRouter(t)

	w := request(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "movie list app")

	w = request(r, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
