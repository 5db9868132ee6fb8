package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-survey-similarity/internal/similarity"
)

// FilterRequest names the candidate to rank everyone else against.
type FilterRequest struct {
	CandidateName string `json:"candidateName" form:"candidateName"`
}

// SearchQueryRequest holds free text naming the candidates of interest.
type SearchQueryRequest struct {
	Query string `json:"query" form:"query"`
}

// FilterHandler ranks every other candidate against the named one, best match first.
func (api *API) FilterHandler(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBind(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	if result := ValidateCandidateName(req.CandidateName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	name := strings.TrimSpace(req.CandidateName)
	results, err := api.manager.Rank(name)
	if err != nil {
		SendDomainError(c, "rank candidates", err)
		return
	}

	api.logger.Debug("candidate ranked", zap.String("candidate", name), zap.Int("results", len(results)))
	c.JSON(http.StatusOK, similarity.FormatAll(results))
}

// SimilarityHandler returns the pairs anchored on one page of candidates.
// Query: page (default 1), page_size (default from settings).
func (api *API) SimilarityHandler(c *gin.Context) {
	page, pageSize, result := ValidatePagination(c.Query("page"), c.Query("page_size"), api.pageSize, api.maxPageSize)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	results, err := api.manager.PagedPairs(page, pageSize)
	if err != nil {
		SendDomainError(c, "compute similarity page", err)
		return
	}

	c.JSON(http.StatusOK, similarity.FormatAll(results))
}

// PairsHandler returns every unordered candidate pair with its score.
func (api *API) PairsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, similarity.FormatAll(api.manager.Pairs()))
}

// SearchQueryHandler returns the pairs whose candidates both appear in the query text.
func (api *API) SearchQueryHandler(c *gin.Context) {
	var req SearchQueryRequest
	if err := c.ShouldBind(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		result := &ValidationResult{Valid: true}
		result.AddError("query", "Query is required")
		SendValidationError(c, result)
		return
	}

	c.JSON(http.StatusOK, similarity.FormatAll(api.manager.Search(req.Query)))
}
