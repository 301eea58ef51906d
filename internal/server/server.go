package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corsa-lab/project-corsa/internal/core/region"
	"github.com/corsa-lab/project-corsa/internal/core/storage"
)

type Server struct {
	Engine  *gin.Engine
	Addr    string
	store   storage.OfferStore
	regions *region.Index
}

func New(addr string, store storage.OfferStore, regions *region.Index, mode string) *Server {
	// Set Gin mode based on configuration
	if mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	s := &Server{
		Engine:  r,
		Addr:    addr,
		store:   store,
		regions: regions,
	}

	// Health check endpoint reporting catalog size
	r.GET("/health", s.healthHandler)

	return s
}

func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	payload := gin.H{"status": "healthy"}

	if s.store != nil {
		offers, err := s.store.Len(ctx)
		if err != nil {
			slog.Error("Health check failed: offer store unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "offer store unreachable",
			})
			return
		}
		payload["offers"] = offers
	}

	if s.regions != nil {
		payload["regions"] = s.regions.Size()
	}

	c.JSON(http.StatusOK, payload)
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Addr,
		Handler: s.Engine,
	}

	slog.Info("Starting HTTP Server...", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("Stopping HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP Server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
