package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/services/search"
)

type SearchHandler struct {
	search *search.Service
}

func NewSearchHandler(svc *search.Service) *SearchHandler {
	return &SearchHandler{search: svc}
}

// Search godoc
// @Summary Search YouTube
// @Description Returns search results for a free-text query, optionally filtered by content type
// @Tags search
// @Produce json
// @Param q query string true "Search query"
// @Param type query string false "Restrict result kind: video, channel, playlist or movie"
// @Param limit query int false "Cap on result count"
// @Param withPlaylists query bool false "Include playlist results"
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /media/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	params, appErr := ParseSearchParams(c)
	if appErr != nil {
		errorResponse(c, appErr)
		return
	}

	resp, err := h.search.Search(ctx, params.Query, params.Type, params.Limit, params.WithPlaylists)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// NextPage godoc
// @Summary Continue a prior search
// @Description Replays the continuation object returned by /media/search to fetch the next page
// @Tags search
// @Accept json
// @Produce json
// @Param request body models.NextPage true "Continuation object from /media/search"
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /media/search/nextpage [post]
func (h *SearchHandler) NextPage(c *gin.Context) {
	ctx := c.Request.Context()

	req, appErr := ParseNextPageBody(c)
	if appErr != nil {
		errorResponse(c, appErr)
		return
	}

	resp, err := h.search.NextPage(ctx, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
