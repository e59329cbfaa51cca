package listing

import (
	"github.com/propfolio/propfolio/internal/types"
	"github.com/shopspring/decimal"
)

// Listing represents a curated real-estate listing a property manager can
// assign to client portfolios.
type Listing struct {
	ID            string              `db:"id" json:"id"`
	Title         string              `db:"title" json:"title"`
	Address       string              `db:"address" json:"address"`
	City          string              `db:"city" json:"city"`
	Price         decimal.Decimal     `db:"price" json:"price"`
	Bedrooms      int                 `db:"bedrooms" json:"bedrooms"`
	Bathrooms     int                 `db:"bathrooms" json:"bathrooms"`
	Description   string              `db:"description" json:"description,omitempty"`
	ListingStatus types.ListingStatus `db:"listing_status" json:"listing_status"`
	OwnerID       string              `db:"owner_id" json:"owner_id"`
	types.BaseModel
}

// IsActive reports whether the listing can be assigned to portfolios
func (l *Listing) IsActive() bool {
	return l.ListingStatus == types.ListingStatusActive
}

// Validate checks the listing invariants
func (l *Listing) Validate() error {
	if l.Title == "" {
		return NewValidationError("title", "must not be empty")
	}
	if l.Address == "" {
		return NewValidationError("address", "must not be empty")
	}
	if l.Price.IsNegative() {
		return NewValidationError("price", "must be non negative")
	}
	if l.Bedrooms < 0 || l.Bathrooms < 0 {
		return NewValidationError("rooms", "must be non negative")
	}
	return l.ListingStatus.Validate()
}
