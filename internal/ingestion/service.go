package ingestion

import (
	"github.com/corsa-lab/project-corsa/internal/core/storage"
	"github.com/gin-gonic/gin"
)

type Service struct {
	store            storage.OfferStore
	maxBodySizeBytes int
}

func NewService(store storage.OfferStore, maxBodySizeMB int) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/offers", s.CreateHandler)
	r.DELETE("/api/offers", s.DeleteHandler)
}
