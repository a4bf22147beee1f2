package favorites

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"movielist/internal/auth"
	"movielist/internal/catalog"
	"movielist/internal/feed"
	"movielist/pkg/models"
)

type Handler struct {
	Repo    *Repo
	Catalog catalog.API
	Hub     *feed.Hub
}

func NewHandler(repo *Repo, api catalog.API, hub *feed.Hub) *Handler {
	return &Handler{Repo: repo, Catalog: api, Hub: hub}
}

// RegisterRoutes mounts the favorites routes; the group must already carry
// the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/favorite", h.list)
	rg.POST("/favorite/:movie_id", h.add)
	rg.DELETE("/favorite/:movie_id", h.remove)
}

// list returns the caller's favorites resolved to full movie details. A
// favorite whose movie has vanished upstream is skipped, not an error; any
// real upstream failure fails the whole listing.
func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed credential"})
		return
	}

	ids, err := h.Repo.List(c.Request.Context(), claims.UserID)
	if err != nil {
		slog.Error("list favorites", "err", err, "user_id", claims.UserID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	out := make([]models.Movie, 0, len(ids))
	for _, id := range ids {
		m, err := h.Catalog.Details(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				slog.Warn("favorite no longer in catalog", "movie_id", id, "user_id", claims.UserID)
				continue
			}
			slog.Error("resolve favorite", "err", err, "movie_id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		out = append(out, m)
	}

	c.JSON(http.StatusOK, gin.H{"favorites": out})
}

func (h *Handler) add(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed credential"})
		return
	}

	movieID, ok := parseMovieID(c)
	if !ok {
		return
	}

	if err := h.Repo.Add(c.Request.Context(), claims.UserID, movieID); err != nil {
		slog.Error("add favorite", "err", err, "user_id", claims.UserID, "movie_id", movieID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if h.Hub != nil {
		ev := feed.FavoriteEvent{
			Type:    "favorite.add",
			UserID:  claims.UserID,
			MovieID: movieID,
			At:      time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "OK", "movie_id": movieID})
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed credential"})
		return
	}

	movieID, ok := parseMovieID(c)
	if !ok {
		return
	}

	if err := h.Repo.Remove(c.Request.Context(), claims.UserID, movieID); err != nil {
		slog.Error("remove favorite", "err", err, "user_id", claims.UserID, "movie_id", movieID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if h.Hub != nil {
		ev := feed.FavoriteEvent{
			Type:    "favorite.remove",
			UserID:  claims.UserID,
			MovieID: movieID,
			At:      time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "movie_id": movieID})
}

func parseMovieID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movie_id must be a positive integer"})
		return 0, false
	}
	return id, true
}
