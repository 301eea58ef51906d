package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	v1 "github.com/corsa-lab/project-corsa/internal/api/v1"
	"github.com/corsa-lab/project-corsa/internal/core/filter"
	"github.com/corsa-lab/project-corsa/internal/core/region"
	"github.com/corsa-lab/project-corsa/internal/core/storage/memory"
)

const day = filter.MillisPerDay

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

// testRegions:
//
//	0 (World)
//	├── 1 (Europe)
//	│   ├── 21 (Germany)
//	│   └── 22 (France)
//	└── 2 (Americas)
func testRegions() *region.Index {
	return region.Build(&region.Node{
		ID:   0,
		Name: "World",
		Subregions: []region.Node{
			{
				ID:   1,
				Name: "Europe",
				Subregions: []region.Node{
					{ID: 21, Name: "Germany"},
					{ID: 22, Name: "France"},
				},
			},
			{ID: 2, Name: "Americas"},
		},
	})
}

// seedOffers: five offers in Europe, one in the Americas. All available for
// the whole [0, 30d] window.
func seedOffers() []*v1.Offer {
	mk := func(id string, regionID int64, price int64, carType string, seats int, vollkasko bool, freeKm int) *v1.Offer {
		return &v1.Offer{
			ID:                   id,
			MostSpecificRegionID: regionID,
			StartDate:            0,
			EndDate:              30 * day,
			NumberSeats:          seats,
			Price:                price,
			CarType:              carType,
			HasVollkasko:         vollkasko,
			FreeKilometers:       freeKm,
			Data:                 "ZGF0YQ==",
		}
	}

	return []*v1.Offer{
		mk("offer-01", 21, 5000, v1.CarTypeSmall, 4, true, 100),
		mk("offer-02", 21, 7500, v1.CarTypeFamily, 5, false, 250),
		mk("offer-03", 22, 5000, v1.CarTypeSports, 2, true, 50),
		mk("offer-04", 2, 3000, v1.CarTypeLuxury, 5, true, 500),
		mk("offer-05", 21, 12000, v1.CarTypeFamily, 7, false, 0),
		mk("offer-06", 22, 9999, v1.CarTypeSmall, 4, false, 150),
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.InsertAll(context.Background(), seedOffers()))
	return NewService(store, testRegions())
}

func baseRequest() SearchRequest {
	return SearchRequest{
		Filters: filter.FilterSet{
			RegionID:       1,
			TimeRangeStart: 0,
			TimeRangeEnd:   30 * day,
			NumberDays:     3,
		},
		SortOrder:             SortPriceAsc,
		Page:                  1,
		PageSize:              10,
		PriceRangeWidth:       1000,
		MinFreeKilometerWidth: 100,
	}
}

func offerIDs(offers []v1.SearchResultOffer) []string {
	ids := make([]string, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestSearch_FullShape(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Search(context.Background(), baseRequest())
	require.NoError(t, err)

	// Price ascending, equal prices broken by identifier.
	require.Equal(t,
		[]string{"offer-01", "offer-03", "offer-02", "offer-06", "offer-05"},
		offerIDs(resp.Offers))

	require.Equal(t, []v1.PriceRange{
		{Start: 5000, End: 6000, Count: 2},
		{Start: 7000, End: 8000, Count: 1},
		{Start: 9000, End: 10000, Count: 1},
		{Start: 12000, End: 13000, Count: 1},
	}, resp.PriceRanges)

	require.Equal(t, v1.CarTypeCounts{Small: 2, Sports: 1, Luxury: 0, Family: 2}, resp.CarTypeCounts)

	require.Equal(t, []v1.SeatsCount{
		{NumberSeats: 2, Count: 1},
		{NumberSeats: 4, Count: 2},
		{NumberSeats: 5, Count: 1},
		{NumberSeats: 7, Count: 1},
	}, resp.SeatsCount)

	require.Equal(t, []v1.FreeKilometerRange{
		{Start: 0, End: 100, Count: 2},
		{Start: 100, End: 200, Count: 2},
		{Start: 200, End: 300, Count: 1},
	}, resp.FreeKilometerRange)

	require.Equal(t, v1.VollkaskoCount{TrueCount: 2, FalseCount: 3}, resp.VollkaskoCount)
}

func TestSearch_RegionScope(t *testing.T) {
	svc := newTestService(t)

	req := baseRequest()
	req.Filters.RegionID = 21
	resp, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []string{"offer-01", "offer-02", "offer-05"}, offerIDs(resp.Offers))

	req.Filters.RegionID = 2
	resp, err = svc.Search(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []string{"offer-04"}, offerIDs(resp.Offers))

	req.Filters.RegionID = 0
	resp, err = svc.Search(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Offers, 6, "the root region spans the whole catalog")

	req.Filters.RegionID = 999
	resp, err = svc.Search(context.Background(), req)
	require.NoError(t, err)
	require.Empty(t, resp.Offers, "unknown regions match nothing but themselves")
}

func TestSearch_OwnDimensionExclusion(t *testing.T) {
	svc := newTestService(t)

	t.Run("car type filter keeps car type facet wide", func(t *testing.T) {
		req := baseRequest()
		req.Filters.CarType = strPtr(v1.CarTypeFamily)

		resp, err := svc.Search(context.Background(), req)
		require.NoError(t, err)

		require.Equal(t, []string{"offer-02", "offer-05"}, offerIDs(resp.Offers))

		// The facet for the filtered dimension ignores that filter.
		require.Equal(t, v1.CarTypeCounts{Small: 2, Sports: 1, Luxury: 0, Family: 2}, resp.CarTypeCounts)

		// Every other facet narrows to family offers.
		require.Equal(t, []v1.PriceRange{
			{Start: 7000, End: 8000, Count: 1},
			{Start: 12000, End: 13000, Count: 1},
		}, resp.PriceRanges)
		require.Equal(t, []v1.SeatsCount{
			{NumberSeats: 5, Count: 1},
			{NumberSeats: 7, Count: 1},
		}, resp.SeatsCount)
		require.Equal(t, v1.VollkaskoCount{TrueCount: 0, FalseCount: 2}, resp.VollkaskoCount)
	})

	t.Run("price filter keeps price facet wide", func(t *testing.T) {
		req := baseRequest()
		req.Filters.MinPrice = int64Ptr(6000)
		req.Filters.MaxPrice = int64Ptr(10000)

		resp, err := svc.Search(context.Background(), req)
		require.NoError(t, err)

		require.Equal(t, []string{"offer-02", "offer-06"}, offerIDs(resp.Offers))

		// Full five-offer histogram despite the price bounds.
		require.Equal(t, []v1.PriceRange{
			{Start: 5000, End: 6000, Count: 2},
			{Start: 7000, End: 8000, Count: 1},
			{Start: 9000, End: 10000, Count: 1},
			{Start: 12000, End: 13000, Count: 1},
		}, resp.PriceRanges)

		// Other facets respect the price bounds.
		require.Equal(t, v1.CarTypeCounts{Small: 1, Sports: 0, Luxury: 0, Family: 1}, resp.CarTypeCounts)
	})

	t.Run("each facet drops only its own dimension", func(t *testing.T) {
		req := baseRequest()
		req.Filters.CarType = strPtr(v1.CarTypeFamily)
		req.Filters.MinPrice = int64Ptr(8000)

		resp, err := svc.Search(context.Background(), req)
		require.NoError(t, err)

		require.Equal(t, []string{"offer-05"}, offerIDs(resp.Offers))

		// Price facet: car type applies, price bounds do not.
		require.Equal(t, []v1.PriceRange{
			{Start: 7000, End: 8000, Count: 1},
			{Start: 12000, End: 13000, Count: 1},
		}, resp.PriceRanges)

		// Car type facet: price applies, car type does not.
		require.Equal(t, v1.CarTypeCounts{Small: 1, Sports: 0, Luxury: 0, Family: 1}, resp.CarTypeCounts)
	})

	t.Run("seats filter keeps seats facet wide", func(t *testing.T) {
		req := baseRequest()
		req.Filters.MinNumberSeats = intPtr(5)

		resp, err := svc.Search(context.Background(), req)
		require.NoError(t, err)

		require.Equal(t, []string{"offer-02", "offer-05"}, offerIDs(resp.Offers))
		require.Equal(t, []v1.SeatsCount{
			{NumberSeats: 2, Count: 1},
			{NumberSeats: 4, Count: 2},
			{NumberSeats: 5, Count: 1},
			{NumberSeats: 7, Count: 1},
		}, resp.SeatsCount)
	})

	t.Run("vollkasko filter keeps vollkasko facet wide", func(t *testing.T) {
		req := baseRequest()
		req.Filters.OnlyVollkasko = boolPtr(true)

		resp, err := svc.Search(context.Background(), req)
		require.NoError(t, err)

		require.Equal(t, []string{"offer-01", "offer-03"}, offerIDs(resp.Offers))
		require.Equal(t, v1.VollkaskoCount{TrueCount: 2, FalseCount: 3}, resp.VollkaskoCount)
	})

	t.Run("free kilometer filter keeps its facet wide", func(t *testing.T) {
		req := baseRequest()
		req.Filters.MinFreeKilometer = intPtr(200)

		resp, err := svc.Search(context.Background(), req)
		require.NoError(t, err)

		require.Equal(t, []string{"offer-02"}, offerIDs(resp.Offers))
		require.Equal(t, []v1.FreeKilometerRange{
			{Start: 0, End: 100, Count: 2},
			{Start: 100, End: 200, Count: 2},
			{Start: 200, End: 300, Count: 1},
		}, resp.FreeKilometerRange)
	})
}

func TestSearch_SortDescending(t *testing.T) {
	svc := newTestService(t)

	req := baseRequest()
	req.SortOrder = SortPriceDesc

	resp, err := svc.Search(context.Background(), req)
	require.NoError(t, err)

	// Equal prices (offer-01, offer-03) flip together with the price key.
	require.Equal(t,
		[]string{"offer-05", "offer-06", "offer-02", "offer-03", "offer-01"},
		offerIDs(resp.Offers))
}

func TestSearch_Pagination(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := baseRequest()
	req.PageSize = 2

	var all []string
	for page := 1; page <= 3; page++ {
		req.Page = page
		resp, err := svc.Search(ctx, req)
		require.NoError(t, err)
		all = append(all, offerIDs(resp.Offers)...)
	}

	// Pages partition the result set: no gaps, no overlaps.
	require.Equal(t, []string{"offer-01", "offer-03", "offer-02", "offer-06", "offer-05"}, all)

	req.Page = 4
	resp, err := svc.Search(ctx, req)
	require.NoError(t, err)
	require.Empty(t, resp.Offers, "out-of-range pages are empty, not an error")
	require.NotEmpty(t, resp.PriceRanges, "facets ignore pagination")
}

func TestSearch_Validation(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name   string
		mutate func(*SearchRequest)
	}{
		{"unknown sort order", func(r *SearchRequest) { r.SortOrder = "price-random" }},
		{"empty sort order", func(r *SearchRequest) { r.SortOrder = "" }},
		{"zero page", func(r *SearchRequest) { r.Page = 0 }},
		{"negative page", func(r *SearchRequest) { r.Page = -2 }},
		{"zero page size", func(r *SearchRequest) { r.PageSize = 0 }},
		{"zero number of days", func(r *SearchRequest) { r.Filters.NumberDays = 0 }},
		{"negative number of days", func(r *SearchRequest) { r.Filters.NumberDays = -1 }},
		{"window end before start", func(r *SearchRequest) {
			r.Filters.TimeRangeStart = 10 * day
			r.Filters.TimeRangeEnd = 5 * day
		}},
		{"zero price width", func(r *SearchRequest) { r.PriceRangeWidth = 0 }},
		{"zero free kilometer width", func(r *SearchRequest) { r.MinFreeKilometerWidth = 0 }},
		{"unknown car type", func(r *SearchRequest) { r.Filters.CarType = strPtr("tank") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			_, err := svc.Search(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestSearch_UnsatisfiableStayLength(t *testing.T) {
	svc := newTestService(t)

	// Well-formed but longer than any representable availability. The query
	// succeeds and matches nothing; it must not error and the facets must
	// not pick up offers that merely touch the window.
	req := baseRequest()
	req.Filters.NumberDays = 200_000_000_000

	resp, err := svc.Search(context.Background(), req)
	require.NoError(t, err)

	require.Empty(t, resp.Offers)
	require.Empty(t, resp.PriceRanges)
	require.Equal(t, v1.CarTypeCounts{}, resp.CarTypeCounts)
	require.Empty(t, resp.SeatsCount)
	require.Empty(t, resp.FreeKilometerRange)
	require.Equal(t, v1.VollkaskoCount{}, resp.VollkaskoCount)
}

func TestSearch_EmptyStore(t *testing.T) {
	svc := NewService(memory.New(), testRegions())

	resp, err := svc.Search(context.Background(), baseRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.Offers)
	require.Empty(t, resp.Offers)
	require.NotNil(t, resp.PriceRanges)
	require.Empty(t, resp.PriceRanges)
	require.Equal(t, v1.CarTypeCounts{}, resp.CarTypeCounts)
	require.NotNil(t, resp.SeatsCount)
	require.Empty(t, resp.SeatsCount)
	require.NotNil(t, resp.FreeKilometerRange)
	require.Empty(t, resp.FreeKilometerRange)
	require.Equal(t, v1.VollkaskoCount{}, resp.VollkaskoCount)
}

func TestSearch_AfterClear(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.InsertAll(ctx, seedOffers()))
	svc := NewService(store, testRegions())

	require.NoError(t, store.Clear(ctx))

	resp, err := svc.Search(ctx, baseRequest())
	require.NoError(t, err)
	require.Empty(t, resp.Offers)
	require.Empty(t, resp.PriceRanges)
	require.Equal(t, v1.VollkaskoCount{}, resp.VollkaskoCount)
}

func TestSearch_NilRegionIndexDegradesToExactMatch(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.InsertAll(ctx, seedOffers()))
	svc := NewService(store, nil)

	req := baseRequest()
	req.Filters.RegionID = 1
	resp, err := svc.Search(ctx, req)
	require.NoError(t, err)
	require.Empty(t, resp.Offers, "no offer carries region 1 itself")

	req.Filters.RegionID = 21
	resp, err = svc.Search(ctx, req)
	require.NoError(t, err)
	require.Equal(t, []string{"offer-01", "offer-02", "offer-05"}, offerIDs(resp.Offers))
}

type failingStore struct{}

func (failingStore) InsertAll(context.Context, []*v1.Offer) error { return errors.New("store down") }
func (failingStore) Clear(context.Context) error                  { return errors.New("store down") }
func (failingStore) Snapshot(context.Context) ([]*v1.Offer, error) {
	return nil, errors.New("store down")
}
func (failingStore) Len(context.Context) (int, error) { return 0, errors.New("store down") }

func TestSearch_StoreError(t *testing.T) {
	svc := NewService(failingStore{}, testRegions())

	_, err := svc.Search(context.Background(), baseRequest())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidQuery, "store failures are not client errors")
}
