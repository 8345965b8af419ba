package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/scholarlink/recommender/internal/errors"
	"github.com/scholarlink/recommender/services"
)

// GetRecommendationsHandler returns the ranked offer list for a student.
// Query parameter "q" is an optional case-insensitive program-name filter.
//
// The response state lets the client distinguish tri-state outcomes: a 200
// with zero hits is "loaded, no matches", while a 503 carries the failed
// state for "catalog not loaded".
func (api *API) GetRecommendationsHandler(c *gin.Context) {
	studentID := c.Param("studentId")
	searchTerm := c.Query("q")

	result, err := api.recommender.Recommend(c.Request.Context(), services.RecommendationQuery{
		StudentID:  studentID,
		SearchTerm: searchTerm,
	})
	if err != nil {
		if errors.Is(err, internalErrors.ErrStudentNotFound) {
			SendStudentNotFoundError(c, studentID)
			return
		}
		if errors.Is(err, internalErrors.ErrCatalogUnavailable) {
			SendCatalogUnavailableError(c, err)
			return
		}
		SendError(c, http.StatusInternalServerError, ErrorCodeRecommendationFailed,
			"Recommendation failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// RefreshCatalogHandler triggers a manual catalog refresh cycle.
func (api *API) RefreshCatalogHandler(c *gin.Context) {
	if api.pipeline == nil {
		SendError(c, http.StatusNotImplemented, ErrorCodeInvalidRequest,
			"Catalog refresh is not available")
		return
	}

	api.pipeline.RefreshCatalog(c.Request.Context())
	c.JSON(http.StatusAccepted, gin.H{"status": "refresh started"})
}

// PipelineInputsRequest carries the reactive pipeline's two client-owned
// input signals. The third signal, the catalog, changes via refresh.
type PipelineInputsRequest struct {
	StudentID  string  `json:"student_id" binding:"required"`
	SearchTerm *string `json:"search_term,omitempty"`
}

// SetPipelineInputsHandler updates the pipeline inputs. Each change starts a
// new recompute cycle; superseded cycles are discarded.
func (api *API) SetPipelineInputsHandler(c *gin.Context) {
	if api.pipeline == nil {
		SendError(c, http.StatusNotImplemented, ErrorCodeInvalidRequest,
			"Pipeline is not available")
		return
	}

	var req PipelineInputsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if req.SearchTerm != nil {
		api.pipeline.SetSearchTerm(*req.SearchTerm)
	}
	api.pipeline.SetStudent(req.StudentID)

	c.JSON(http.StatusAccepted, gin.H{"status": "recompute started"})
}

// GetPipelineResultHandler returns the latest published result. The state
// field distinguishes "loading" from "loaded, zero matches" from "failed".
func (api *API) GetPipelineResultHandler(c *gin.Context) {
	if api.pipeline == nil {
		SendError(c, http.StatusNotImplemented, ErrorCodeInvalidRequest,
			"Pipeline is not available")
		return
	}

	c.JSON(http.StatusOK, api.pipeline.Current())
}
