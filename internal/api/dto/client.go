package dto

import (
	"context"
	"time"

	"github.com/propfolio/propfolio/internal/domain/client"
	"github.com/propfolio/propfolio/internal/types"
	"github.com/propfolio/propfolio/internal/validator"
)

// CreateClientRequest represents the request payload for creating a client
type CreateClientRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Notes string `json:"notes,omitempty"`
}

func (r *CreateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToClient converts the request to a domain client with a fresh portal
// access token
func (r *CreateClientRequest) ToClient(ctx context.Context) *client.Client {
	return &client.Client{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		Name:        r.Name,
		Email:       r.Email,
		Notes:       r.Notes,
		AccessToken: types.GenerateShortID(),
		OwnerID:     types.GetUserID(ctx),
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

// UpdateClientRequest represents the request payload for editing a client
type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Notes *string `json:"notes,omitempty"`
}

func (r *UpdateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply merges the set fields onto an existing client
func (r *UpdateClientRequest) Apply(c *client.Client) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Notes != nil {
		c.Notes = *r.Notes
	}
}

// AssignListingRequest represents the request payload for adding a
// listing to a client's portfolio
type AssignListingRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
}

func (r *AssignListingRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Notes       string    `json:"notes,omitempty"`
	AccessToken string    `json:"access_token"`
	ListingIDs  []string  `json:"listing_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewClientResponse creates a client response from a domain client
func NewClientResponse(c *client.Client) *ClientResponse {
	return &ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Notes:       c.Notes,
		AccessToken: c.AccessToken,
		ListingIDs:  c.ListingIDs,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ListClientsResponse represents a paginated list of clients
type ListClientsResponse = types.ListResponse[*ClientResponse]

// PortfolioResponse is the client-facing portal view: the client's name
// and their assigned listings, addressed by access token only.
type PortfolioResponse struct {
	ClientName string             `json:"client_name"`
	Listings   []*ListingResponse `json:"listings"`
}
