package search

import (
	"github.com/corsa-lab/project-corsa/internal/core/filter"
)

// Sort orders accepted by the search API. Price is always the primary key,
// the offer identifier the tie-break; both flip together for descending.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// SearchRequest is one normalized catalog query: the predicate set plus the
// presentation parameters (ordering, page cut, facet bucket widths).
type SearchRequest struct {
	Filters filter.FilterSet

	SortOrder string
	Page      int
	PageSize  int

	PriceRangeWidth       int64
	MinFreeKilometerWidth int
}
