package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	httperr "github.com/corsa-lab/project-corsa/internal/core/errors"
	"github.com/corsa-lab/project-corsa/internal/metrics"

	v1 "github.com/corsa-lab/project-corsa/internal/api/v1"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
	msgPersistFailed  = "Failed to store offers"
	msgClearFailed    = "Failed to delete offers"
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

// CreateHandler handles HTTP POST requests carrying a batch of offers.
// The batch is atomic: if any offer fails validation the whole request is
// rejected and nothing is stored.
func (s *Service) CreateHandler(c *gin.Context) {
	offers, payloadSize, ierr := s.parseOffers(c)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	if ierr := validateOffers(offers); ierr != nil {
		writeError(c, ierr)
		return
	}

	batchID := uuid.NewString()
	slog.Info("Received offer batch",
		"batch_id", batchID,
		"offer_count", len(offers),
		"payload_size", payloadSize)

	if ierr := s.persistOffers(c.Request.Context(), offers); ierr != nil {
		writeError(c, ierr)
		return
	}

	metrics.OffersIngestedTotal.Add(float64(len(offers)))
	s.recordStoredCount(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Offers created successfully"})
}

// DeleteHandler handles HTTP DELETE requests that drop every stored offer.
// Deleting from an already empty store succeeds.
func (s *Service) DeleteHandler(c *gin.Context) {
	if err := s.store.Clear(c.Request.Context()); err != nil {
		slog.Error("Failed to clear offer store", "error", err)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgClearFailed,
		})
		return
	}

	metrics.OffersStored.Set(0)
	slog.Info("Cleared offer store")

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "All offers deleted"})
}

// parseOffers reads the raw request body and binds it into a slice of offers.
// The expected body is a bare JSON array. Returns the offers and the raw
// payload size (used for structured logging upstream).
func (s *Service) parseOffers(c *gin.Context) ([]*v1.Offer, int, *ingestionError) {
	// Enforce maximum body size to prevent OOM on unbounded uploads
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLargeError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var offers []*v1.Offer
	if err := c.ShouldBindJSON(&offers); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	// A literal null body decodes without error but is not an array.
	if offers == nil {
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	return offers, len(bodyBytes), nil
}

// validateOffers checks every offer envelope. The index of the first failing
// offer is reported so clients can locate the bad element in their batch.
func validateOffers(offers []*v1.Offer) *ingestionError {
	for i, o := range offers {
		if o == nil {
			return &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidJsonError,
				message:    fmt.Sprintf("offer at index %d is null", i),
				details:    map[string]interface{}{"index": i},
			}
		}
		if err := o.Validate(); err != nil {
			slog.Warn("Offer validation failed", "error", err, "index", i, "offer_id", o.ID)
			return &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidJsonError,
				message:    err.Error(),
				details:    map[string]interface{}{"index": i, "offer_id": o.ID},
			}
		}
	}
	return nil
}

// persistOffers saves the batch to the backing store.
func (s *Service) persistOffers(ctx context.Context, offers []*v1.Offer) *ingestionError {
	if err := s.store.InsertAll(ctx, offers); err != nil {
		slog.Error("Failed to store offer batch", "error", err, "offer_count", len(offers))
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}
	return nil
}

// recordStoredCount refreshes the stored-offers gauge. A failed read only
// costs a metric update, so it is logged and swallowed.
func (s *Service) recordStoredCount(ctx context.Context) {
	n, err := s.store.Len(ctx)
	if err != nil {
		slog.Warn("Failed to read store size for metrics", "error", err)
		return
	}
	metrics.OffersStored.Set(float64(n))
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
