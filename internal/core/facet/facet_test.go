package facet

import (
	"testing"

	"github.com/stretchr/testify/require"

	v1 "github.com/corsa-lab/project-corsa/internal/api/v1"
)

func offerWithPrice(id string, price int64) *v1.Offer {
	return &v1.Offer{ID: id, Price: price}
}

func TestPriceHistogram_BucketBoundaries(t *testing.T) {
	offers := []*v1.Offer{
		offerWithPrice("a", 0),     // bucket [0, 100)
		offerWithPrice("b", 99),    // bucket [0, 100)
		offerWithPrice("c", 100),   // bucket [100, 200), lower bound inclusive
		offerWithPrice("d", 199),   // bucket [100, 200), upper bound exclusive
		offerWithPrice("e", 200),   // bucket [200, 300)
		offerWithPrice("f", 10000), // bucket [10000, 10100)
	}

	got := PriceHistogram(offers, 100)

	require.Equal(t, []v1.PriceRange{
		{Start: 0, End: 100, Count: 2},
		{Start: 100, End: 200, Count: 2},
		{Start: 200, End: 300, Count: 1},
		{Start: 10000, End: 10100, Count: 1},
	}, got)
}

func TestPriceHistogram_OmitsEmptyBuckets(t *testing.T) {
	offers := []*v1.Offer{
		offerWithPrice("a", 50),
		offerWithPrice("b", 950),
	}

	got := PriceHistogram(offers, 100)

	require.Len(t, got, 2, "gap buckets between occupied ones must not be emitted")
	for _, bucket := range got {
		require.Positive(t, bucket.Count)
		require.Equal(t, bucket.Start+100, bucket.End)
	}
}

func TestPriceHistogram_EveryOfferInExactlyOneBucket(t *testing.T) {
	offers := []*v1.Offer{
		offerWithPrice("a", 1),
		offerWithPrice("b", 250),
		offerWithPrice("c", 251),
		offerWithPrice("d", 499),
		offerWithPrice("e", 500),
	}

	got := PriceHistogram(offers, 250)

	total := 0
	for i, bucket := range got {
		total += bucket.Count
		if i > 0 {
			require.Greater(t, bucket.Start, got[i-1].Start, "buckets must ascend")
		}
	}
	require.Equal(t, len(offers), total)
}

func TestPriceHistogram_Empty(t *testing.T) {
	got := PriceHistogram(nil, 100)

	require.NotNil(t, got, "empty input must yield an empty slice, not nil")
	require.Empty(t, got)
}

func TestFreeKilometerHistogram(t *testing.T) {
	offers := []*v1.Offer{
		{ID: "a", FreeKilometers: 0},
		{ID: "b", FreeKilometers: 49},
		{ID: "c", FreeKilometers: 50},
		{ID: "d", FreeKilometers: 510},
	}

	got := FreeKilometerHistogram(offers, 50)

	require.Equal(t, []v1.FreeKilometerRange{
		{Start: 0, End: 50, Count: 2},
		{Start: 50, End: 100, Count: 1},
		{Start: 500, End: 550, Count: 1},
	}, got)
}

func TestFreeKilometerHistogram_Empty(t *testing.T) {
	got := FreeKilometerHistogram([]*v1.Offer{}, 50)

	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestCountCarTypes(t *testing.T) {
	offers := []*v1.Offer{
		{ID: "a", CarType: v1.CarTypeSmall},
		{ID: "b", CarType: v1.CarTypeSmall},
		{ID: "c", CarType: v1.CarTypeFamily},
		{ID: "d", CarType: v1.CarTypeLuxury},
	}

	got := CountCarTypes(offers)

	require.Equal(t, v1.CarTypeCounts{
		Small:  2,
		Sports: 0, // zero still reported
		Luxury: 1,
		Family: 1,
	}, got)
}

func TestCountCarTypes_Empty(t *testing.T) {
	require.Equal(t, v1.CarTypeCounts{}, CountCarTypes(nil))
}

func TestCountSeats_AscendingObservedOnly(t *testing.T) {
	offers := []*v1.Offer{
		{ID: "a", NumberSeats: 7},
		{ID: "b", NumberSeats: 2},
		{ID: "c", NumberSeats: 5},
		{ID: "d", NumberSeats: 2},
	}

	got := CountSeats(offers)

	require.Equal(t, []v1.SeatsCount{
		{NumberSeats: 2, Count: 2},
		{NumberSeats: 5, Count: 1},
		{NumberSeats: 7, Count: 1},
	}, got)
}

func TestCountSeats_Empty(t *testing.T) {
	got := CountSeats(nil)

	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestCountVollkasko(t *testing.T) {
	offers := []*v1.Offer{
		{ID: "a", HasVollkasko: true},
		{ID: "b", HasVollkasko: false},
		{ID: "c", HasVollkasko: true},
	}

	require.Equal(t, v1.VollkaskoCount{TrueCount: 2, FalseCount: 1}, CountVollkasko(offers))
	require.Equal(t, v1.VollkaskoCount{}, CountVollkasko(nil))
}
