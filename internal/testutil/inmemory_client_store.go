package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/propfolio/propfolio/internal/domain/client"
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/propfolio/propfolio/internal/types"
)

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	mu          sync.RWMutex
	clients     map[string]*client.Client
	assignments map[string]map[string]bool
}

// NewInMemoryClientStore creates a new in-memory client store
func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		clients:     make(map[string]*client.Client),
		assignments: make(map[string]map[string]bool),
	}
}

func (s *InMemoryClientStore) copyClient(c *client.Client) *client.Client {
	if c == nil {
		return nil
	}
	cp := *c
	cp.ListingIDs = nil
	for listingID := range s.assignments[c.ID] {
		cp.ListingIDs = append(cp.ListingIDs, listingID)
	}
	sort.Strings(cp.ListingIDs)
	return &cp
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	s.clients[c.ID] = &cp
	return nil
}

func (s *InMemoryClientStore) Get(ctx context.Context, id string) (*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok || c.Status == types.StatusDeleted {
		return nil, ierr.WithError(client.ErrClientNotFound).
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}
	return s.copyClient(c), nil
}

func (s *InMemoryClientStore) GetByAccessToken(ctx context.Context, token string) (*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.clients {
		if c.AccessToken == token && c.Status != types.StatusDeleted {
			return s.copyClient(c), nil
		}
	}
	return nil, ierr.WithError(client.ErrClientNotFound).
		WithHint("Client not found").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryClientStore) Update(ctx context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.clients[c.ID]
	if !ok || existing.Status == types.StatusDeleted {
		return ierr.WithError(client.ErrClientNotFound).
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}
	cp := *c
	s.clients[c.ID] = &cp
	return nil
}

func (s *InMemoryClientStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok || c.Status == types.StatusDeleted {
		return ierr.WithError(client.ErrClientNotFound).
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}
	c.Status = types.StatusDeleted
	delete(s.assignments, id)
	return nil
}

func (s *InMemoryClientStore) List(ctx context.Context, filter *types.QueryFilter) ([]*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*client.Client
	for _, c := range s.clients {
		if c.Status != types.StatusDeleted {
			results = append(results, s.copyClient(c))
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

func (s *InMemoryClientStore) Count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, c := range s.clients {
		if c.Status != types.StatusDeleted {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryClientStore) AssignListing(ctx context.Context, clientID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return ierr.WithError(client.ErrClientNotFound).
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}
	if s.assignments[clientID] == nil {
		s.assignments[clientID] = make(map[string]bool)
	}
	s.assignments[clientID][listingID] = true
	return nil
}

func (s *InMemoryClientStore) UnassignListing(ctx context.Context, clientID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.assignments[clientID] == nil || !s.assignments[clientID][listingID] {
		return ierr.WithError(client.ErrListingNotAssigned).
			WithHint("Listing is not part of this portfolio").
			Mark(ierr.ErrNotFound)
	}
	delete(s.assignments[clientID], listingID)
	return nil
}

func (s *InMemoryClientStore) CountAssignments(ctx context.Context, listingID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, listings := range s.assignments {
		if listings[listingID] {
			count++
		}
	}
	return count, nil
}
