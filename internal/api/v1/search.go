package v1

// SearchResultOffer is one page entry of a search result. Only the identifier
// and the opaque payload are returned; searchable attributes stay server-side.
type SearchResultOffer struct {
	ID   string `json:"ID"`
	Data string `json:"data"`
}

// PriceRange is one non-empty price histogram bucket covering [Start, End).
type PriceRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
	Count int   `json:"count"`
}

// CarTypeCounts reports matching offers per car type.
// All four fields are always present, zeroes included.
type CarTypeCounts struct {
	Small  int `json:"small"`
	Sports int `json:"sports"`
	Luxury int `json:"luxury"`
	Family int `json:"family"`
}

// SeatsCount reports how many matching offers have exactly NumberSeats seats.
type SeatsCount struct {
	NumberSeats int `json:"numberSeats"`
	Count       int `json:"count"`
}

// FreeKilometerRange is one non-empty free-kilometer histogram bucket
// covering [Start, End).
type FreeKilometerRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Count int `json:"count"`
}

// VollkaskoCount splits matching offers by full-insurance flag.
type VollkaskoCount struct {
	TrueCount  int `json:"trueCount"`
	FalseCount int `json:"falseCount"`
}

// SearchResponse is the complete reply to a catalog search: one sorted page
// of hits plus facet summaries computed over the whole filtered set.
// Slice fields are always non-nil so they encode as [] rather than null.
type SearchResponse struct {
	Offers             []SearchResultOffer  `json:"offers"`
	PriceRanges        []PriceRange         `json:"priceRanges"`
	CarTypeCounts      CarTypeCounts        `json:"carTypeCounts"`
	SeatsCount         []SeatsCount         `json:"seatsCount"`
	FreeKilometerRange []FreeKilometerRange `json:"freeKilometerRange"`
	VollkaskoCount     VollkaskoCount       `json:"vollkaskoCount"`
}
