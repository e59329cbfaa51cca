package client

import (
	"context"

	"github.com/propfolio/propfolio/internal/types"
)

// Repository defines the interface for client persistence operations
type Repository interface {
	// Create creates a new client
	Create(ctx context.Context, c *Client) error

	// Get retrieves a client by ID, assigned listings included
	Get(ctx context.Context, id string) (*Client, error)

	// GetByAccessToken retrieves a client by portal access token
	GetByAccessToken(ctx context.Context, token string) (*Client, error)

	// Update updates an existing client
	Update(ctx context.Context, c *Client) error

	// Delete soft-deletes a client
	Delete(ctx context.Context, id string) error

	// List retrieves clients based on filter criteria
	List(ctx context.Context, filter *types.QueryFilter) ([]*Client, error)

	// Count returns the total count of clients based on filter criteria
	Count(ctx context.Context, filter *types.QueryFilter) (int, error)

	// AssignListing adds a listing to the client's portfolio
	AssignListing(ctx context.Context, clientID, listingID string) error

	// UnassignListing removes a listing from the client's portfolio
	UnassignListing(ctx context.Context, clientID, listingID string) error

	// CountAssignments returns how many portfolios include the listing
	CountAssignments(ctx context.Context, listingID string) (int, error)
}
