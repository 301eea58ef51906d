package storage

import (
	"context"

	v1 "github.com/corsa-lab/project-corsa/internal/api/v1"
)

// OfferStore defines the interface for the volatile offer catalog.
// Offers are appended in bulk and never individually mutated or deleted;
// the entire catalog is cleared atomically.
type OfferStore interface {
	// InsertAll appends the given offers to the catalog. The store takes
	// ownership: callers must not mutate the offers afterwards.
	InsertAll(ctx context.Context, offers []*v1.Offer) error

	// Clear atomically removes every offer. Snapshots taken before the
	// clear remain valid.
	Clear(ctx context.Context) error

	// Snapshot returns a stable read-only view of the catalog as of the
	// call. Callers must not mutate the returned slice or its offers.
	Snapshot(ctx context.Context) ([]*v1.Offer, error)

	// Len reports the number of stored offers.
	Len(ctx context.Context) (int, error)
}
