package filter

import (
	v1 "github.com/corsa-lab/project-corsa/internal/api/v1"
	"github.com/corsa-lab/project-corsa/internal/core/region"
)

// MillisPerDay is the length of one rental day on the millisecond epoch axis.
const MillisPerDay int64 = 86_400_000

// FilterSet is the transient predicate input of one search. The four scope
// fields are always set and validated upstream; the pointer fields apply only
// when non-nil.
type FilterSet struct {
	RegionID       int64
	TimeRangeStart int64
	TimeRangeEnd   int64
	NumberDays     int64

	MinNumberSeats   *int
	MinPrice         *int64
	MaxPrice         *int64
	CarType          *string
	OnlyVollkasko    *bool
	MinFreeKilometer *int
}

// Matches reports whether the offer satisfies every predicate of the filter
// set. Predicates are conjunctive. Matches never fails: malformed input is
// rejected at the query boundary before it reaches this point.
func Matches(o *v1.Offer, f FilterSet, regions *region.Index) bool {
	if !regions.Contains(f.RegionID, o.MostSpecificRegionID) {
		return false
	}

	if !windowFits(o, f) {
		return false
	}

	if f.MinNumberSeats != nil && o.NumberSeats < *f.MinNumberSeats {
		return false
	}

	// Minimum price is inclusive, maximum price exclusive, so adjacent
	// [min, max) ranges partition the price axis without double-matching.
	if f.MinPrice != nil && o.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && o.Price >= *f.MaxPrice {
		return false
	}

	if f.CarType != nil && o.CarType != *f.CarType {
		return false
	}

	// An explicit false admits both: the filter means "only offers with full
	// coverage", not "only offers without".
	if f.OnlyVollkasko != nil && *f.OnlyVollkasko && !o.HasVollkasko {
		return false
	}

	if f.MinFreeKilometer != nil && o.FreeKilometers < *f.MinFreeKilometer {
		return false
	}

	return true
}

// windowFits checks that the overlap between the offer's availability and the
// requested window is long enough to fit the requested stay as one contiguous
// block. This is containment, not point overlap: an offer available for two
// days never satisfies a five-day request even when the ranges intersect.
// An exact fit qualifies.
func windowFits(o *v1.Offer, f FilterSet) bool {
	lo := max64(o.StartDate, f.TimeRangeStart)
	hi := min64(o.EndDate, f.TimeRangeEnd)
	if hi < lo {
		return false
	}
	if f.NumberDays <= 0 {
		return true
	}

	// Compare in whole days. NumberDays*MillisPerDay can exceed the int64
	// range, and so can hi-lo for epoch extremes; the uint64 difference is
	// exact because hi >= lo holds here.
	overlapDays := (uint64(hi) - uint64(lo)) / uint64(MillisPerDay)
	return overlapDays >= uint64(f.NumberDays)
}

// The facet layer computes each dimension over the offers matching every
// predicate except that dimension's own, so the copies below clear exactly
// one dimension each. Scope predicates (region, time window) are never
// cleared.

// WithoutPrice returns a copy with both price bounds cleared.
func (f FilterSet) WithoutPrice() FilterSet {
	f.MinPrice = nil
	f.MaxPrice = nil
	return f
}

// WithoutCarType returns a copy with the car type predicate cleared.
func (f FilterSet) WithoutCarType() FilterSet {
	f.CarType = nil
	return f
}

// WithoutSeats returns a copy with the minimum seat predicate cleared.
func (f FilterSet) WithoutSeats() FilterSet {
	f.MinNumberSeats = nil
	return f
}

// WithoutFreeKilometers returns a copy with the free-kilometer predicate cleared.
func (f FilterSet) WithoutFreeKilometers() FilterSet {
	f.MinFreeKilometer = nil
	return f
}

// WithoutVollkasko returns a copy with the insurance predicate cleared.
func (f FilterSet) WithoutVollkasko() FilterSet {
	f.OnlyVollkasko = nil
	return f
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
