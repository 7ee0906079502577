package ingestion

import (
	"github.com/gin-gonic/gin"
	"github.com/wattline/wattline/internal/core/storage"
)

type Service struct {
	store            *ResourceStore
	resources        storage.ResourceRepository
	maxBodySizeBytes int
}

func NewService(store *ResourceStore, resources storage.ResourceRepository, maxBodySizeMB int) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if resources == nil {
		panic("ingestion: resource repository must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		resources:        resources,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/resources/:id/samples", s.IngestHandler)
	r.GET("/v1/resources/:id/latest", s.LatestHandler)
}
