package projection

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wattline/wattline/internal/core/aggregation"
	httperr "github.com/wattline/wattline/internal/core/errors"
	"github.com/wattline/wattline/internal/core/storage"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/series", s.HandleQuerySeries)
}

// HandleQuerySeries handles GET /v1/series
// Query parameters: resources, unit, resolution, option, from, to, tz, mode,
// fill, cmp_from, cmp_to, cut, period
func (s *Service) HandleQuerySeries(c *gin.Context) {
	var req SeriesQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.QuerySeries(c.Request.Context(), req)
	if err != nil {
		writeQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func writeQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, aggregation.ErrNoData):
		c.Status(http.StatusNoContent)
	case errors.Is(err, ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid series query",
			Details:   err.Error(),
		})
	case errors.Is(err, aggregation.ErrInconsistentResources):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInconsistentResourcesError,
			Message:   "Resources cannot be aggregated together",
			Details:   err.Error(),
		})
	case errors.Is(err, aggregation.ErrUnsupportedConditions):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpUnsupportedConditionsError,
			Message:   "Unsupported aggregation conditions",
			Details:   err.Error(),
		})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpResourceNotFoundError,
			Message:   "Resource not found",
			Details:   err.Error(),
		})
	default:
		slog.Error("[Projection] Series query failed", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to query series",
			Details:   err.Error(),
		})
	}
}
