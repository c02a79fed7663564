// Package handlers exposes the catalog and account state of one application
// instance as a local JSON API.
package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/mediamatch/internal/config"
	"github.com/amaumene/mediamatch/internal/constants"
	"github.com/amaumene/mediamatch/internal/mood"
	"github.com/amaumene/mediamatch/internal/services"
)

// Handler handles HTTP requests against the service container.
type Handler struct {
	services *services.Container
	config   *config.Config
}

func New(services *services.Container, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

// RegisterRoutes registers every API route on r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.handleHealth)

	api := r.Group("/api")
	api.GET("/moods", h.handleMoods)
	api.GET("/genres", h.handleGenres)

	cat := api.Group("/catalog")
	cat.GET("", h.handleCatalogState)
	cat.POST("/trending", h.handleLoadTrending)
	cat.POST("/search", h.handleSearch)
	cat.POST("/more", h.handleLoadMore)
	cat.POST("/browse/:mood", h.handleBrowseByMood)
	cat.PUT("/mood", h.handleSetMood)
	cat.DELETE("/mood", h.handleClearMood)
	cat.PUT("/genres", h.handleSetGenres)
	cat.PUT("/sort", h.handleSetSort)
	cat.POST("/items/:id/select", h.handleSelectItem)
	cat.DELETE("/detail", h.handleCloseDetail)
	cat.PUT("/items/:id/rating", h.handleRate)

	acct := api.Group("/account")
	acct.POST("/register", h.handleRegister)
	acct.POST("/login", h.handleLogin)
	acct.POST("/logout", h.handleLogout)
	acct.GET("/session", h.handleSession)
	acct.PATCH("/profile", h.handleUpdateProfile)
	acct.DELETE("", h.handleDeleteAccount)
	acct.GET("/users", h.handleDirectory)

	acct.GET("/watchlist", h.handleWatchlist)
	acct.POST("/watchlist", h.handleAddToWatchlist)
	acct.DELETE("/watchlist/:id", h.handleRemoveFromWatchlist)
	acct.GET("/watched", h.handleWatched)
	acct.POST("/watched", h.handleAddToWatched)
	acct.DELETE("/watched/:id", h.handleRemoveFromWatched)
	acct.PUT("/watched/:id/rating", h.handleUpdateMovieRating)
	acct.GET("/following", h.handleFollowing)
	acct.POST("/following/:userId", h.handleFollow)
	acct.DELETE("/following/:userId", h.handleUnfollow)

	api.GET("/movies/:id/status", h.handleMovieStatus)
	api.GET("/movies/:id/reviews", h.handleMovieReviews)
	api.POST("/movies/:id/reviews", h.handleAddReview)
	api.POST("/reviews/:id/like", h.handleLikeReview)
	api.POST("/reviews/:id/comments", h.handleAddComment)
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    constants.AppName,
		"version": constants.AppVersion,
	})
}

func (h *Handler) handleMoods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"moods": mood.Browsable()})
}

type genreView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) handleGenres(c *gin.Context) {
	genres := make([]genreView, 0, len(constants.TMDBMovieGenres))
	for id, name := range constants.TMDBMovieGenres {
		genres = append(genres, genreView{ID: id, Name: name})
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	c.JSON(http.StatusOK, gin.H{"genres": genres})
}
