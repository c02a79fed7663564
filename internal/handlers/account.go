package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/mediamatch/internal/account"
	apperrors "github.com/amaumene/mediamatch/internal/errors"
	"github.com/amaumene/mediamatch/internal/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

// movieRequest names a movie either by a full snapshot or by the id of an
// item currently held in the catalog.
type movieRequest struct {
	ID     int               `json:"id"`
	Movie  *models.MovieItem `json:"movie"`
	Rating int               `json:"rating"`
}

type commentRequest struct {
	Text string `json:"text"`
}

func (h *Handler) respondSession(c *gin.Context, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	session, ok := h.services.Account.Session()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": false, "user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAuthenticated": true, "user": session})
}

func (h *Handler) handleRegister(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respondSession(c, h.services.Account.Register(req.Name, req.Email, req.Password))
}

func (h *Handler) handleLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respondSession(c, h.services.Account.Login(req.Email, req.Password))
}

func (h *Handler) handleLogout(c *gin.Context) {
	h.services.Account.Logout()
	h.respondSession(c, nil)
}

func (h *Handler) handleSession(c *gin.Context) {
	h.respondSession(c, nil)
}

func (h *Handler) handleUpdateProfile(c *gin.Context) {
	var req account.ProfileUpdate
	if !bindJSON(c, &req) {
		return
	}
	h.respondSession(c, h.services.Account.UpdateProfile(req))
}

func (h *Handler) handleDeleteAccount(c *gin.Context) {
	var req passwordRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respondSession(c, h.services.Account.DeleteAccount(req.Password))
}

func (h *Handler) handleDirectory(c *gin.Context) {
	users, err := h.services.Account.Directory()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// resolveMovie returns the snapshot from the request or looks the id up in the catalog.
func (h *Handler) resolveMovie(req movieRequest) (models.MovieItem, error) {
	if req.Movie != nil {
		if req.Movie.ID <= 0 {
			return models.MovieItem{}, apperrors.NewValidationError("Invalid movie")
		}
		return *req.Movie, nil
	}
	if req.ID <= 0 {
		return models.MovieItem{}, apperrors.NewValidationError("Invalid movie")
	}
	for _, item := range h.services.Catalog.All() {
		if item.ID == req.ID {
			return item, nil
		}
	}
	if sel, ok := h.services.Catalog.Selected(); ok && sel.ID == req.ID {
		return sel, nil
	}
	return models.MovieItem{}, apperrors.NewNotFoundError("Movie not found")
}

func (h *Handler) handleWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"watchlist": h.services.Account.Watchlist()})
}

func (h *Handler) handleAddToWatchlist(c *gin.Context) {
	var req movieRequest
	if !bindJSON(c, &req) {
		return
	}
	movie, err := h.resolveMovie(req)
	if err == nil {
		err = h.services.Account.AddToWatchlist(movie)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"watchlist": h.services.Account.Watchlist()})
}

func (h *Handler) handleRemoveFromWatchlist(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.services.Account.RemoveFromWatchlist(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"watchlist": h.services.Account.Watchlist()})
}

func (h *Handler) handleWatched(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"watched": h.services.Account.Watched()})
}

func (h *Handler) handleAddToWatched(c *gin.Context) {
	var req movieRequest
	if !bindJSON(c, &req) {
		return
	}
	movie, err := h.resolveMovie(req)
	if err == nil {
		err = h.services.Account.AddToWatched(movie, req.Rating)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"watched":   h.services.Account.Watched(),
		"watchlist": h.services.Account.Watchlist(),
	})
}

func (h *Handler) handleRemoveFromWatched(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.services.Account.RemoveFromWatched(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"watched": h.services.Account.Watched()})
}

func (h *Handler) handleUpdateMovieRating(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req ratingRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.services.Account.UpdateMovieRating(id, req.Rating); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"watched": h.services.Account.Watched()})
}

func (h *Handler) handleMovieStatus(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"inWatchlist": h.services.Account.IsInWatchlist(id),
		"watched":     h.services.Account.IsWatched(id),
	})
}

func (h *Handler) handleFollowing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"following": h.services.Account.Following()})
}

func (h *Handler) handleFollow(c *gin.Context) {
	if err := h.services.Account.Follow(c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": h.services.Account.Following()})
}

func (h *Handler) handleUnfollow(c *gin.Context) {
	if err := h.services.Account.Unfollow(c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": h.services.Account.Following()})
}

func (h *Handler) handleMovieReviews(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": h.services.Account.ReviewsForMovie(id)})
}

func (h *Handler) handleAddReview(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req account.ReviewInput
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.services.Account.AddReview(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *Handler) handleLikeReview(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Account.LikeReview(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": h.services.Account.Reviews()})
}

func (h *Handler) handleAddComment(c *gin.Context) {
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.services.Account.AddComment(c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
