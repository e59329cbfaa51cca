package dto

import (
	"context"
	"time"

	"github.com/propfolio/propfolio/internal/domain/listing"
	"github.com/propfolio/propfolio/internal/types"
	"github.com/propfolio/propfolio/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateListingRequest represents the request payload for creating a listing
type CreateListingRequest struct {
	Title       string          `json:"title" validate:"required"`
	Address     string          `json:"address" validate:"required"`
	City        string          `json:"city" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Bedrooms    int             `json:"bedrooms" validate:"min=0"`
	Bathrooms   int             `json:"bathrooms" validate:"min=0"`
	Description string          `json:"description,omitempty"`
}

func (r *CreateListingRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToListing converts the request to a domain listing
func (r *CreateListingRequest) ToListing(ctx context.Context) *listing.Listing {
	return &listing.Listing{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LISTING),
		Title:         r.Title,
		Address:       r.Address,
		City:          r.City,
		Price:         r.Price,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		Description:   r.Description,
		ListingStatus: types.ListingStatusActive,
		OwnerID:       types.GetUserID(ctx),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

// UpdateListingRequest represents the request payload for editing a listing
type UpdateListingRequest struct {
	Title       *string          `json:"title,omitempty"`
	Address     *string          `json:"address,omitempty"`
	City        *string          `json:"city,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Bedrooms    *int             `json:"bedrooms,omitempty"`
	Bathrooms   *int             `json:"bathrooms,omitempty"`
	Description *string          `json:"description,omitempty"`
}

func (r *UpdateListingRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply merges the set fields onto an existing listing
func (r *UpdateListingRequest) Apply(l *listing.Listing) {
	if r.Title != nil {
		l.Title = *r.Title
	}
	if r.Address != nil {
		l.Address = *r.Address
	}
	if r.City != nil {
		l.City = *r.City
	}
	if r.Price != nil {
		l.Price = *r.Price
	}
	if r.Bedrooms != nil {
		l.Bedrooms = *r.Bedrooms
	}
	if r.Bathrooms != nil {
		l.Bathrooms = *r.Bathrooms
	}
	if r.Description != nil {
		l.Description = *r.Description
	}
}

// ListingResponse represents a listing in API responses
type ListingResponse struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Address       string              `json:"address"`
	City          string              `json:"city"`
	Price         decimal.Decimal     `json:"price"`
	Bedrooms      int                 `json:"bedrooms"`
	Bathrooms     int                 `json:"bathrooms"`
	Description   string              `json:"description,omitempty"`
	ListingStatus types.ListingStatus `json:"listing_status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewListingResponse creates a listing response from a domain listing
func NewListingResponse(l *listing.Listing) *ListingResponse {
	return &ListingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Address:       l.Address,
		City:          l.City,
		Price:         l.Price,
		Bedrooms:      l.Bedrooms,
		Bathrooms:     l.Bathrooms,
		Description:   l.Description,
		ListingStatus: l.ListingStatus,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// ListListingsResponse represents a paginated list of listings
type ListListingsResponse = types.ListResponse[*ListingResponse]
