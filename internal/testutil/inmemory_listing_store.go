package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/propfolio/propfolio/internal/domain/listing"
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/propfolio/propfolio/internal/types"
)

// InMemoryListingStore implements listing.Repository
type InMemoryListingStore struct {
	mu       sync.RWMutex
	listings map[string]*listing.Listing
}

// NewInMemoryListingStore creates a new in-memory listing store
func NewInMemoryListingStore() *InMemoryListingStore {
	return &InMemoryListingStore{
		listings: make(map[string]*listing.Listing),
	}
}

func copyListing(l *listing.Listing) *listing.Listing {
	if l == nil {
		return nil
	}
	cp := *l
	return &cp
}

func (s *InMemoryListingStore) Create(ctx context.Context, l *listing.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[l.ID] = copyListing(l)
	return nil
}

func (s *InMemoryListingStore) Get(ctx context.Context, id string) (*listing.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[id]
	if !ok || l.Status == types.StatusDeleted {
		return nil, ierr.WithError(listing.ErrListingNotFound).
			WithHint("Listing not found").
			Mark(ierr.ErrNotFound)
	}
	return copyListing(l), nil
}

func (s *InMemoryListingStore) Update(ctx context.Context, l *listing.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.listings[l.ID]
	if !ok || existing.Status == types.StatusDeleted {
		return ierr.WithError(listing.ErrListingNotFound).
			WithHint("Listing not found").
			Mark(ierr.ErrNotFound)
	}
	s.listings[l.ID] = copyListing(l)
	return nil
}

func (s *InMemoryListingStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[id]
	if !ok || l.Status == types.StatusDeleted {
		return ierr.WithError(listing.ErrListingNotFound).
			WithHint("Listing not found").
			Mark(ierr.ErrNotFound)
	}
	l.Status = types.StatusDeleted
	return nil
}

func (s *InMemoryListingStore) List(ctx context.Context, filter *types.ListingFilter) ([]*listing.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*listing.Listing
	for _, l := range s.listings {
		if s.matchesFilter(l, filter) {
			results = append(results, copyListing(l))
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	if filter != nil {
		offset := filter.GetOffset()
		limit := filter.GetLimit()
		if offset >= len(results) {
			return nil, nil
		}
		results = results[offset:]
		if limit > 0 && limit < len(results) {
			results = results[:limit]
		}
	}
	return results, nil
}

func (s *InMemoryListingStore) Count(ctx context.Context, filter *types.ListingFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, l := range s.listings {
		if s.matchesFilter(l, filter) {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryListingStore) matchesFilter(l *listing.Listing, filter *types.ListingFilter) bool {
	if l.Status == types.StatusDeleted {
		return false
	}
	if filter == nil {
		return true
	}
	if filter.ListingStatus != nil && l.ListingStatus != *filter.ListingStatus {
		return false
	}
	if filter.City != nil && l.City != *filter.City {
		return false
	}
	return true
}
