package search

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	v1 "github.com/corsa-lab/project-corsa/internal/api/v1"
	"github.com/corsa-lab/project-corsa/internal/core/facet"
	"github.com/corsa-lab/project-corsa/internal/core/filter"
	"github.com/corsa-lab/project-corsa/internal/core/region"
	"github.com/corsa-lab/project-corsa/internal/core/storage"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid search query")

// Service implements the catalog query layer. Every call works on one store
// snapshot, so a result is a pure function of (snapshot, region index,
// request) and concurrent searches never observe half-applied writes.
type Service struct {
	store   storage.OfferStore
	regions *region.Index
}

// NewService creates a new search service. A nil region index is accepted and
// degrades every region to its own singleton subtree.
func NewService(store storage.OfferStore, regions *region.Index) *Service {
	if store == nil {
		panic("search: store must not be nil")
	}
	if regions == nil {
		regions = region.New()
	}
	return &Service{
		store:   store,
		regions: regions,
	}
}

// Search executes one catalog query: filter the snapshot, sort and cut the
// requested page, and compute the five facet summaries.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*v1.SearchResponse, error) {
	req, err := s.normalizeAndValidate(req)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot offer store: %w", err)
	}

	resp := &v1.SearchResponse{}

	// The page and the five facets are independent passes over the snapshot,
	// so they run concurrently. Each facet is computed over the offers that
	// pass every predicate except the facet's own dimension: a user adjusting
	// one dimension must still see which values of it remain reachable.
	// Region and time window are scope, never excluded.
	var g errgroup.Group

	g.Go(func() error {
		matched := s.filterOffers(snapshot, req.Filters)
		resp.Offers = s.pageOf(matched, req)
		return nil
	})
	g.Go(func() error {
		subset := s.filterOffers(snapshot, req.Filters.WithoutPrice())
		resp.PriceRanges = facet.PriceHistogram(subset, req.PriceRangeWidth)
		return nil
	})
	g.Go(func() error {
		subset := s.filterOffers(snapshot, req.Filters.WithoutCarType())
		resp.CarTypeCounts = facet.CountCarTypes(subset)
		return nil
	})
	g.Go(func() error {
		subset := s.filterOffers(snapshot, req.Filters.WithoutSeats())
		resp.SeatsCount = facet.CountSeats(subset)
		return nil
	})
	g.Go(func() error {
		subset := s.filterOffers(snapshot, req.Filters.WithoutFreeKilometers())
		resp.FreeKilometerRange = facet.FreeKilometerHistogram(subset, req.MinFreeKilometerWidth)
		return nil
	})
	g.Go(func() error {
		subset := s.filterOffers(snapshot, req.Filters.WithoutVollkasko())
		resp.VollkaskoCount = facet.CountVollkasko(subset)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resp, nil
}

// normalizeAndValidate guards the semantic validity of a request. Below this
// boundary the engine never raises: filters, sorting, pagination and facets
// all assume validated input.
func (s *Service) normalizeAndValidate(req SearchRequest) (SearchRequest, error) {
	if req.SortOrder != SortPriceAsc && req.SortOrder != SortPriceDesc {
		return req, invalidQueryf("invalid sortOrder: %s (must be price-asc or price-desc)", req.SortOrder)
	}
	if req.Page <= 0 {
		return req, invalidQueryf("page must be positive")
	}
	if req.PageSize <= 0 {
		return req, invalidQueryf("pageSize must be positive")
	}
	if req.PriceRangeWidth <= 0 {
		return req, invalidQueryf("priceRangeWidth must be positive")
	}
	if req.MinFreeKilometerWidth <= 0 {
		return req, invalidQueryf("minFreeKilometerWidth must be positive")
	}

	if req.Filters.NumberDays <= 0 {
		return req, invalidQueryf("numberDays must be positive")
	}
	if req.Filters.TimeRangeEnd < req.Filters.TimeRangeStart {
		return req, invalidQueryf("timeRangeEnd must not precede timeRangeStart")
	}
	if req.Filters.CarType != nil && !v1.ValidCarType(*req.Filters.CarType) {
		return req, invalidQueryf("invalid carType: %s (must be small, sports, luxury, or family)", *req.Filters.CarType)
	}

	return req, nil
}

// filterOffers returns the offers of the snapshot matching the filter set.
func (s *Service) filterOffers(snapshot []*v1.Offer, f filter.FilterSet) []*v1.Offer {
	matched := make([]*v1.Offer, 0, len(snapshot))
	for _, o := range snapshot {
		if filter.Matches(o, f, s.regions) {
			matched = append(matched, o)
		}
	}
	return matched
}

// pageOf sorts the matched offers and cuts the requested page down to the
// wire shape.
func (s *Service) pageOf(matched []*v1.Offer, req SearchRequest) []v1.SearchResultOffer {
	sortOffers(matched, req.SortOrder)
	cut := paginate(matched, req.Page, req.PageSize)

	page := make([]v1.SearchResultOffer, 0, len(cut))
	for _, o := range cut {
		page = append(page, v1.SearchResultOffer{ID: o.ID, Data: o.Data})
	}
	return page
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
