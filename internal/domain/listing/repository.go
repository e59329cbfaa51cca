package listing

import (
	"context"

	"github.com/propfolio/propfolio/internal/types"
)

// Repository defines the interface for listing persistence operations
type Repository interface {
	// Create creates a new listing
	Create(ctx context.Context, l *Listing) error

	// Get retrieves a listing by ID
	Get(ctx context.Context, id string) (*Listing, error)

	// Update updates an existing listing
	Update(ctx context.Context, l *Listing) error

	// Delete soft-deletes a listing
	Delete(ctx context.Context, id string) error

	// List retrieves listings based on filter criteria
	List(ctx context.Context, filter *types.ListingFilter) ([]*Listing, error)

	// Count returns the total count of listings based on filter criteria
	Count(ctx context.Context, filter *types.ListingFilter) (int, error)
}
