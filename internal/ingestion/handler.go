package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	v1 "github.com/wattline/wattline/internal/api/v1"
	"github.com/wattline/wattline/internal/core/aggregation"
	httperr "github.com/wattline/wattline/internal/core/errors"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/storage"
)

const (
	msgReadBodyFailed    = "Failed to read request body"
	msgInvalidJSON       = "Invalid JSON body"
	msgPersistFailed     = "Failed to persist samples"
	msgResourceNotFound  = "Resource not found"
	msgLoadResourceError = "Failed to load resource"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestHandler handles POST /v1/resources/:id/samples. The body is a JSON
// array of raw samples; they are applied in time order.
func (s *Service) IngestHandler(c *gin.Context) {
	res, ierr := s.loadResource(c.Request.Context(), c.Param("id"))
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	samples, payloadSize, ierr := s.parseSamples(c)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	slog.Info("[Ingestion] Received samples",
		"resource_id", res.ID,
		"count", len(samples),
		"payload_size", payloadSize)

	if ierr := s.persistSamples(c.Request.Context(), res, samples); ierr != nil {
		writeError(c, ierr)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "count": len(samples)})
}

// LatestHandler handles GET /v1/resources/:id/latest.
func (s *Service) LatestHandler(c *gin.Context) {
	value, err := s.store.GetLatestValue(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, value)
	case errors.Is(err, aggregation.ErrNoData):
		c.Status(http.StatusNoContent)
	case errors.Is(err, storage.ErrNotFound):
		writeError(c, &ingestionError{
			statusCode: http.StatusNotFound,
			errorType:  httperr.HttpResourceNotFoundError,
			message:    msgResourceNotFound,
		})
	default:
		slog.Error("[Ingestion] Failed to read latest value", "resource_id", c.Param("id"), "error", err)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgLoadResourceError,
		})
	}
}

func (s *Service) loadResource(ctx context.Context, id string) (*resource.Resource, *ingestionError) {
	res, err := s.resources.GetResource(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &ingestionError{
				statusCode: http.StatusNotFound,
				errorType:  httperr.HttpResourceNotFoundError,
				message:    msgResourceNotFound,
				details:    map[string]interface{}{"resource_id": id},
			}
		}
		slog.Error("[Ingestion] Failed to load resource", "resource_id", id, "error", err)
		return nil, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgLoadResourceError,
		}
	}
	return res, nil
}

// parseSamples reads the raw request body and decodes it into samples.
// Returns the samples and the raw payload size (used for structured logging upstream).
func (s *Service) parseSamples(c *gin.Context) ([]v1.RawSample, int, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("[Ingestion] Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("[Ingestion] Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var samples []v1.RawSample
	if err := c.ShouldBindJSON(&samples); err != nil {
		slog.Warn("[Ingestion] Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	for i := range samples {
		if err := samples[i].Validate(); err != nil {
			return nil, len(bodyBytes), &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidSampleError,
				message:    err.Error(),
				details:    map[string]interface{}{"index": i},
			}
		}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Time.Before(samples[j].Time)
	})
	return samples, len(bodyBytes), nil
}

func (s *Service) persistSamples(ctx context.Context, res *resource.Resource, samples []v1.RawSample) *ingestionError {
	for i := range samples {
		if err := s.store.AddValue(ctx, res, samples[i]); err != nil {
			if errors.Is(err, ErrInvalidSample) {
				return &ingestionError{
					statusCode: http.StatusBadRequest,
					errorType:  httperr.HttpInvalidSampleError,
					message:    err.Error(),
					details:    map[string]interface{}{"time": samples[i].Time},
				}
			}

			slog.Error("[Ingestion] Failed to persist sample", "resource_id", res.ID, "time", samples[i].Time, "error", err)
			return &ingestionError{
				statusCode: http.StatusInternalServerError,
				errorType:  httperr.HttpInternalError,
				message:    msgPersistFailed,
			}
		}
	}
	return nil
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
