package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/mediamatch/internal/catalog"
	"github.com/amaumene/mediamatch/internal/models"
)

type trendingRequest struct {
	Page int `json:"page"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type moodRequest struct {
	Mood models.Mood `json:"mood"`
}

type genresRequest struct {
	Genres []int `json:"genres"`
}

type sortRequest struct {
	SortBy    string `json:"sortBy"`
	Direction string `json:"direction"`
}

type ratingRequest struct {
	Rating int `json:"rating"`
}

// respondCatalog answers with the catalog snapshot, or the error if err is set.
func (h *Handler) respondCatalog(c *gin.Context, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.services.Catalog.State())
}

func (h *Handler) handleCatalogState(c *gin.Context) {
	h.respondCatalog(c, nil)
}

func (h *Handler) handleLoadTrending(c *gin.Context) {
	req := trendingRequest{Page: 1}
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	h.respondCatalog(c, h.services.Catalog.LoadTrending(c.Request.Context(), req.Page))
}

func (h *Handler) handleSearch(c *gin.Context) {
	var req searchRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respondCatalog(c, h.services.Catalog.Search(c.Request.Context(), req.Query))
}

func (h *Handler) handleLoadMore(c *gin.Context) {
	h.respondCatalog(c, h.services.Catalog.LoadMore(c.Request.Context()))
}

func (h *Handler) handleBrowseByMood(c *gin.Context) {
	m := models.Mood(c.Param("mood"))
	h.respondCatalog(c, h.services.Catalog.BrowseByMood(c.Request.Context(), m))
}

func (h *Handler) handleSetMood(c *gin.Context) {
	var req moodRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respondCatalog(c, h.services.Catalog.SetMood(req.Mood))
}

func (h *Handler) handleClearMood(c *gin.Context) {
	h.services.Catalog.ClearMoodFilter()
	h.respondCatalog(c, nil)
}

func (h *Handler) handleSetGenres(c *gin.Context) {
	var req genresRequest
	if !bindJSON(c, &req) {
		return
	}
	h.services.Catalog.SetGenres(req.Genres)
	h.respondCatalog(c, nil)
}

func (h *Handler) handleSetSort(c *gin.Context) {
	var req sortRequest
	if !bindJSON(c, &req) {
		return
	}
	key, ok := catalog.ParseSortKey(req.SortBy)
	if !ok {
		badRequest(c, "Unknown sort key: "+req.SortBy)
		return
	}
	dir, ok := catalog.ParseSortDirection(req.Direction)
	if !ok && req.Direction != "" {
		badRequest(c, "Unknown sort direction: "+req.Direction)
		return
	}
	h.services.Catalog.SetSort(key, dir)
	h.respondCatalog(c, nil)
}

func (h *Handler) handleSelectItem(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	h.respondCatalog(c, h.services.Catalog.SelectItem(c.Request.Context(), id))
}

func (h *Handler) handleCloseDetail(c *gin.Context) {
	h.services.Catalog.CloseDetail()
	h.respondCatalog(c, nil)
}

func (h *Handler) handleRate(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req ratingRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respondCatalog(c, h.services.Catalog.Rate(id, req.Rating))
}
