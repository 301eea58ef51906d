package search

import (
	"sort"

	v1 "github.com/corsa-lab/project-corsa/internal/api/v1"
)

// sortOffers orders offers in place by price with the identifier as
// tie-break. Both keys reverse together for price-desc: reversing only the
// primary key would leave equal-price groups in insertion order, and page
// boundaries would then depend on ingestion history.
func sortOffers(offers []*v1.Offer, order string) {
	asc := order != SortPriceDesc

	sort.Slice(offers, func(i, j int) bool {
		a, b := offers[i], offers[j]
		if a.Price != b.Price {
			if asc {
				return a.Price < b.Price
			}
			return a.Price > b.Price
		}
		if asc {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
}

// paginate cuts the 1-indexed page of size pageSize out of offers.
// Out-of-range pages and non-positive inputs yield an empty result, never
// an error.
func paginate(offers []*v1.Offer, page, pageSize int) []*v1.Offer {
	if page <= 0 || pageSize <= 0 {
		return nil
	}

	// Bound the page by division first: the offset product below can wrap
	// around for huge page numbers and land back inside the slice.
	if page-1 > (len(offers)-1)/pageSize {
		return nil
	}

	offset := (page - 1) * pageSize
	if offset >= len(offers) {
		return nil
	}

	end := offset + pageSize
	if end > len(offers) {
		end = len(offers)
	}
	return offers[offset:end]
}
