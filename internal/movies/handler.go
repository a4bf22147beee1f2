package movies

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"movielist/internal/catalog"
)

const (
	minPopularCount = 1
	maxPopularCount = 20
)

type Handler struct {
	Catalog  catalog.API
	Composer *catalog.Composer
}

func NewHandler(api catalog.API, composer *catalog.Composer) *Handler {
	return &Handler{Catalog: api, Composer: composer}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/most_popular", h.mostPopular)
	rg.GET("/most_popular/:n", h.mostPopular)
	rg.GET("/same_genres/:title", h.sameGenres)
	rg.GET("/similar_runtime/:title", h.similarRuntime)
	rg.GET("/:title", h.search)
}

// mostPopular returns the top-n popular movies, n defaulting to 1.
// Validation happens before any upstream call is made.
func (h *Handler) mostPopular(c *gin.Context) {
	n := minPopularCount
	if raw := c.Param("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for 'n', it should be between 1 and 20"})
			return
		}
		n = parsed
	}
	if n < minPopularCount || n > maxPopularCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for 'n', it should be between 1 and 20"})
		return
	}

	popular, err := h.Catalog.Popular(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(popular) > n {
		popular = popular[:n]
	}

	c.JSON(http.StatusOK, gin.H{"results": popular})
}

func (h *Handler) sameGenres(c *gin.Context) {
	title, ok := titleParam(c)
	if !ok {
		return
	}

	result, err := h.Composer.SameGenres(c.Request.Context(), title)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": result})
}

func (h *Handler) similarRuntime(c *gin.Context) {
	title, ok := titleParam(c)
	if !ok {
		return
	}

	result, err := h.Composer.SimilarRuntime(c.Request.Context(), title)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": result})
}

func (h *Handler) search(c *gin.Context) {
	title, ok := titleParam(c)
	if !ok {
		return
	}

	result, err := h.Catalog.Search(c.Request.Context(), title)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": result})
}

func titleParam(c *gin.Context) (string, bool) {
	title := strings.TrimSpace(c.Param("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return "", false
	}
	return title, true
}

// respondError maps typed outcomes to HTTP statuses. Upstream details are
// logged server-side only; the response body stays generic.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var ue *catalog.UpstreamError
	if errors.As(err, &ue) {
		slog.Error("upstream catalog failure", "status", ue.StatusCode, "body", ue.Body, "path", c.FullPath())
	} else {
		slog.Error("movie request failed", "err", err, "path", c.FullPath())
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
