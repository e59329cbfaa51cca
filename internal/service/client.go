package service

import (
	"context"
	"time"

	"github.com/propfolio/propfolio/internal/api/dto"
	"github.com/propfolio/propfolio/internal/domain/client"
	"github.com/propfolio/propfolio/internal/domain/listing"
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/postgres"
	"github.com/propfolio/propfolio/internal/types"
)

// ClientService manages concierge clients and their listing portfolios,
// including the token-addressed portal view.
type ClientService interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id string) (*dto.ClientResponse, error)
	ListClients(ctx context.Context, filter *types.QueryFilter) (*dto.ListClientsResponse, error)
	UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeleteClient(ctx context.Context, id string) error
	AssignListing(ctx context.Context, clientID string, req dto.AssignListingRequest) (*dto.ClientResponse, error)
	UnassignListing(ctx context.Context, clientID, listingID string) (*dto.ClientResponse, error)
	GetPortfolioByToken(ctx context.Context, token string) (*dto.PortfolioResponse, error)
}

type clientService struct {
	db          postgres.IClient
	logger      *logger.Logger
	clientRepo  client.Repository
	listingRepo listing.Repository
}

func NewClientService(
	clientRepo client.Repository,
	listingRepo listing.Repository,
	logger *logger.Logger,
	db postgres.IClient,
) ClientService {
	return &clientService{
		db:          db,
		logger:      logger,
		clientRepo:  clientRepo,
		listingRepo: listingRepo,
	}
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToClient(ctx)
	if err := c.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Client failed validation").
			Mark(ierr.ErrValidation)
	}

	if err := s.clientRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Infow("client created", "client_id", c.ID, "name", c.Name)
	return dto.NewClientResponse(c), nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := s.clientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewClientResponse(c), nil
}

func (s *clientService) ListClients(ctx context.Context, filter *types.QueryFilter) (*dto.ListClientsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.clientRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		items = append(items, dto.NewClientResponse(c))
	}

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.clientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(c)
	if err := c.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Client failed validation").
			Mark(ierr.ErrValidation)
	}

	c.UpdatedAt = time.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)

	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.NewClientResponse(c), nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.clientRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}

func (s *clientService) AssignListing(ctx context.Context, clientID string, req dto.AssignListingRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.clientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	l, err := s.listingRepo.Get(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	if !l.IsActive() {
		return nil, ierr.NewError("listing is not active").
			WithHint("Archived listings cannot be added to a portfolio").
			WithReportableDetails(map[string]any{
				"listing_id":     l.ID,
				"listing_status": l.ListingStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if c.HasListing(l.ID) {
		return nil, ierr.WithError(client.ErrListingAlreadyAssigned).
			WithHint("Listing is already part of this portfolio").
			Mark(ierr.ErrAlreadyExists)
	}

	if err := s.clientRepo.AssignListing(ctx, c.ID, l.ID); err != nil {
		return nil, err
	}
	c.ListingIDs = append(c.ListingIDs, l.ID)

	s.logger.Infow("listing assigned to portfolio",
		"client_id", c.ID,
		"listing_id", l.ID,
	)
	return dto.NewClientResponse(c), nil
}

func (s *clientService) UnassignListing(ctx context.Context, clientID, listingID string) (*dto.ClientResponse, error) {
	c, err := s.clientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if !c.HasListing(listingID) {
		return nil, ierr.WithError(client.ErrListingNotAssigned).
			WithHint("Listing is not part of this portfolio").
			Mark(ierr.ErrNotFound)
	}

	if err := s.clientRepo.UnassignListing(ctx, c.ID, listingID); err != nil {
		return nil, err
	}

	remaining := make([]string, 0, len(c.ListingIDs))
	for _, id := range c.ListingIDs {
		if id != listingID {
			remaining = append(remaining, id)
		}
	}
	c.ListingIDs = remaining

	return dto.NewClientResponse(c), nil
}

func (s *clientService) GetPortfolioByToken(ctx context.Context, token string) (*dto.PortfolioResponse, error) {
	c, err := s.clientRepo.GetByAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	resp := &dto.PortfolioResponse{
		ClientName: c.Name,
		Listings:   make([]*dto.ListingResponse, 0, len(c.ListingIDs)),
	}

	for _, id := range c.ListingIDs {
		l, err := s.listingRepo.Get(ctx, id)
		if err != nil {
			// A listing removed from the catalogue should not break the
			// whole portfolio page
			s.logger.Warnw("skipping unavailable portfolio listing",
				"client_id", c.ID,
				"listing_id", id,
				"error", err,
			)
			continue
		}
		if !l.IsActive() {
			continue
		}
		resp.Listings = append(resp.Listings, dto.NewListingResponse(l))
	}

	return resp, nil
}
