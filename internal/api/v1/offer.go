package v1

import (
	"fmt"
)

// Car types accepted on the wire. The enumeration is closed: every offer
// carries exactly one of these values.
const (
	CarTypeSmall  = "small"
	CarTypeSports = "sports"
	CarTypeLuxury = "luxury"
	CarTypeFamily = "family"
)

// carTypes is the registry of valid car types.
// To add a new car type: add a constant above and an entry here.
var carTypes = map[string]struct{}{
	CarTypeSmall:  {},
	CarTypeSports: {},
	CarTypeLuxury: {},
	CarTypeFamily: {},
}

// ValidCarType reports whether ct is a registered car type.
func ValidCarType(ct string) bool {
	_, ok := carTypes[ct]
	return ok
}

// Offer is the atomic unit of the catalog.
// It separates the searchable attributes (the envelope) from the payload (the letter).
type Offer struct {
	// --- Searchable Attributes (The Envelope) ---

	// ID is the unique immutable identifier provided by the client.
	// Uniqueness is the caller's responsibility; the engine never enforces it.
	ID string `json:"ID"`

	// MostSpecificRegionID is the leaf-most region the offer is located in.
	// Searches for any ancestor region also return this offer.
	MostSpecificRegionID int64 `json:"mostSpecificRegionID"`

	// StartDate and EndDate bound the availability window (epoch milliseconds).
	// StartDate <= EndDate.
	StartDate int64 `json:"startDate"`
	EndDate   int64 `json:"endDate"`

	// NumberSeats is the seat count of the car. Positive.
	NumberSeats int `json:"numberSeats"`

	// Price in the smallest currency unit. Non-negative.
	Price int64 `json:"price"`

	// CarType is one of the values registered in carTypes.
	CarType string `json:"carType"`

	// HasVollkasko reports whether the offer includes full insurance coverage.
	HasVollkasko bool `json:"hasVollkasko"`

	// FreeKilometers is the included free-kilometer allowance. Non-negative.
	FreeKilometers int `json:"freeKilometers"`

	// --- Payload (The Letter) ---

	// Data is the base64-encoded offer blob. Carried through verbatim,
	// never inspected by the engine.
	Data string `json:"data"`
}

// Validate ensures the offer has all required searchable attributes.
func (o *Offer) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("ID is required")
	}

	if o.Data == "" {
		return fmt.Errorf("data is required")
	}

	if o.EndDate < o.StartDate {
		return fmt.Errorf("endDate must not precede startDate")
	}

	if o.NumberSeats <= 0 {
		return fmt.Errorf("numberSeats must be positive")
	}

	if o.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}

	if !ValidCarType(o.CarType) {
		return fmt.Errorf("invalid carType %q (must be small, sports, luxury, or family)", o.CarType)
	}

	if o.FreeKilometers < 0 {
		return fmt.Errorf("freeKilometers must not be negative")
	}

	return nil
}
