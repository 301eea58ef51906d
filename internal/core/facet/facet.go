package facet

import (
	"sort"

	v1 "github.com/corsa-lab/project-corsa/internal/api/v1"
)

// The functions in this package summarize one dimension of an already
// filtered offer subset. They never filter themselves: the caller hands in
// the subset appropriate for the dimension (every predicate applied except
// the dimension's own).

// PriceHistogram buckets offers by price into [k*width, (k+1)*width) ranges.
// Only non-empty buckets are returned, ascending by start. width must be
// positive; the query boundary validates it before this runs.
func PriceHistogram(offers []*v1.Offer, width int64) []v1.PriceRange {
	counts := make(map[int64]int)
	for _, o := range offers {
		counts[o.Price/width]++
	}

	out := make([]v1.PriceRange, 0, len(counts))
	for bucket, count := range counts {
		out = append(out, v1.PriceRange{
			Start: bucket * width,
			End:   (bucket + 1) * width,
			Count: count,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// FreeKilometerHistogram buckets offers by free-kilometer allowance into
// [k*width, (k+1)*width) ranges. Same emission rules as PriceHistogram.
func FreeKilometerHistogram(offers []*v1.Offer, width int) []v1.FreeKilometerRange {
	counts := make(map[int]int)
	for _, o := range offers {
		counts[o.FreeKilometers/width]++
	}

	out := make([]v1.FreeKilometerRange, 0, len(counts))
	for bucket, count := range counts {
		out = append(out, v1.FreeKilometerRange{
			Start: bucket * width,
			End:   (bucket + 1) * width,
			Count: count,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// CountCarTypes tallies offers per car type. All four counters are reported
// even when zero, so clients can render the full choice list.
func CountCarTypes(offers []*v1.Offer) v1.CarTypeCounts {
	var counts v1.CarTypeCounts
	for _, o := range offers {
		switch o.CarType {
		case v1.CarTypeSmall:
			counts.Small++
		case v1.CarTypeSports:
			counts.Sports++
		case v1.CarTypeLuxury:
			counts.Luxury++
		case v1.CarTypeFamily:
			counts.Family++
		}
	}
	return counts
}

// CountSeats tallies offers per exact seat count. Only observed seat values
// are reported, ascending.
func CountSeats(offers []*v1.Offer) []v1.SeatsCount {
	counts := make(map[int]int)
	for _, o := range offers {
		counts[o.NumberSeats]++
	}

	out := make([]v1.SeatsCount, 0, len(counts))
	for seats, count := range counts {
		out = append(out, v1.SeatsCount{NumberSeats: seats, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].NumberSeats < out[j].NumberSeats
	})
	return out
}

// CountVollkasko splits offers by full-insurance flag.
func CountVollkasko(offers []*v1.Offer) v1.VollkaskoCount {
	var counts v1.VollkaskoCount
	for _, o := range offers {
		if o.HasVollkasko {
			counts.TrueCount++
		} else {
			counts.FalseCount++
		}
	}
	return counts
}
