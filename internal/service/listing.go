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

// ListingService manages the curated listing catalogue
type ListingService interface {
	CreateListing(ctx context.Context, req dto.CreateListingRequest) (*dto.ListingResponse, error)
	GetListing(ctx context.Context, id string) (*dto.ListingResponse, error)
	ListListings(ctx context.Context, filter *types.ListingFilter) (*dto.ListListingsResponse, error)
	UpdateListing(ctx context.Context, id string, req dto.UpdateListingRequest) (*dto.ListingResponse, error)
	ArchiveListing(ctx context.Context, id string) (*dto.ListingResponse, error)
	DeleteListing(ctx context.Context, id string) error
}

type listingService struct {
	db          postgres.IClient
	logger      *logger.Logger
	listingRepo listing.Repository
	clientRepo  client.Repository
}

func NewListingService(
	listingRepo listing.Repository,
	clientRepo client.Repository,
	logger *logger.Logger,
	db postgres.IClient,
) ListingService {
	return &listingService{
		db:          db,
		logger:      logger,
		listingRepo: listingRepo,
		clientRepo:  clientRepo,
	}
}

func (s *listingService) CreateListing(ctx context.Context, req dto.CreateListingRequest) (*dto.ListingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l := req.ToListing(ctx)
	if err := l.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Listing failed validation").
			Mark(ierr.ErrValidation)
	}

	if err := s.listingRepo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Infow("listing created", "listing_id", l.ID, "title", l.Title)
	return dto.NewListingResponse(l), nil
}

func (s *listingService) GetListing(ctx context.Context, id string) (*dto.ListingResponse, error) {
	l, err := s.listingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewListingResponse(l), nil
}

func (s *listingService) ListListings(ctx context.Context, filter *types.ListingFilter) (*dto.ListListingsResponse, error) {
	if filter == nil {
		filter = &types.ListingFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	listings, err := s.listingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.listingRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ListingResponse, 0, len(listings))
	for _, l := range listings {
		items = append(items, dto.NewListingResponse(l))
	}

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *listingService) UpdateListing(ctx context.Context, id string, req dto.UpdateListingRequest) (*dto.ListingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l, err := s.listingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(l)
	if err := l.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Listing failed validation").
			Mark(ierr.ErrValidation)
	}

	l.UpdatedAt = time.Now().UTC()
	l.UpdatedBy = types.GetUserID(ctx)

	if err := s.listingRepo.Update(ctx, l); err != nil {
		return nil, err
	}
	return dto.NewListingResponse(l), nil
}

func (s *listingService) ArchiveListing(ctx context.Context, id string) (*dto.ListingResponse, error) {
	l, err := s.listingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if l.ListingStatus == types.ListingStatusArchived {
		return dto.NewListingResponse(l), nil
	}

	l.ListingStatus = types.ListingStatusArchived
	l.UpdatedAt = time.Now().UTC()
	l.UpdatedBy = types.GetUserID(ctx)

	if err := s.listingRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Infow("listing archived", "listing_id", l.ID)
	return dto.NewListingResponse(l), nil
}

func (s *listingService) DeleteListing(ctx context.Context, id string) error {
	l, err := s.listingRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	// A listing still present in any portfolio cannot be removed; the
	// client portal would otherwise render dangling entries
	assignments, err := s.clientRepo.CountAssignments(ctx, l.ID)
	if err != nil {
		return err
	}
	if assignments > 0 {
		return ierr.WithError(listing.ErrListingAssigned).
			WithHintf("Listing is assigned to %d client portfolios", assignments).
			WithReportableDetails(map[string]any{
				"listing_id":  l.ID,
				"assignments": assignments,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	return s.listingRepo.Delete(ctx, l.ID)
}
