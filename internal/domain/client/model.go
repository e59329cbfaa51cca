package client

import (
	"github.com/propfolio/propfolio/internal/types"
)

// Client represents a concierge client. Each client carries a portal
// access token used to address their personalized portfolio page without
// authentication, and a set of assigned listing ids.
type Client struct {
	ID          string   `db:"id" json:"id"`
	Name        string   `db:"name" json:"name"`
	Email       string   `db:"email" json:"email"`
	Notes       string   `db:"notes" json:"notes,omitempty"`
	AccessToken string   `db:"access_token" json:"access_token"`
	ListingIDs  []string `db:"-" json:"listing_ids,omitempty"`
	OwnerID     string   `db:"owner_id" json:"owner_id"`
	types.BaseModel
}

// Validate checks the client invariants
func (c *Client) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", "must not be empty")
	}
	if c.Email == "" {
		return NewValidationError("email", "must not be empty")
	}
	return nil
}

// HasListing reports whether a listing is part of the client's portfolio
func (c *Client) HasListing(listingID string) bool {
	for _, id := range c.ListingIDs {
		if id == listingID {
			return true
		}
	}
	return false
}
