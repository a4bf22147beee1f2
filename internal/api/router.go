// Package api wires handlers, guard and middleware into a gin engine. The
// per-endpoint authentication choice lives here and only here: every movie
// route is guarded, matching the original deployment, while registration,
// login and the health probes stay public.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"movielist/internal/auth"
	"movielist/internal/catalog"
	"movielist/internal/favorites"
	"movielist/internal/feed"
	"movielist/internal/movies"
	"movielist/pkg/utils"
)

type Deps struct {
	DB      *sqlx.DB
	Catalog catalog.API
	Tokens  auth.TokenService
	Hub     *feed.Hub
}

func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestID())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the movie list app!"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := d.DB.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "db": "ok"})
	})

	if d.Hub != nil {
		router.GET("/ws", feed.WSHandler(d.Hub))
	}

	guard := auth.AuthMiddleware(d.Tokens)

	// Accounts
	authRepo := auth.NewRepo(d.DB)
	authHandler := auth.NewHandler(authRepo, d.Tokens)
	authHandler.RegisterRoutes(&router.RouterGroup)
	router.DELETE("/user", guard, authHandler.DeleteAccount)

	router.GET("/user/me", guard, func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
		})
	})

	// Movies (guarded, like the original app)
	composer := catalog.NewComposer(d.Catalog)
	movieGroup := router.Group("/movies", guard)

	favRepo := favorites.NewRepo(d.DB)
	favHandler := favorites.NewHandler(favRepo, d.Catalog, d.Hub)
	favHandler.RegisterRoutes(movieGroup)

	movieHandler := movies.NewHandler(d.Catalog, composer)
	movieHandler.RegisterRoutes(movieGroup)

	return router
}
