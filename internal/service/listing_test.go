package service

import (
	"testing"

	"github.com/propfolio/propfolio/internal/api/dto"
	"github.com/propfolio/propfolio/internal/testutil"
	"github.com/propfolio/propfolio/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ListingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service       ListingService
	clientService ClientService
}

func TestListingService(t *testing.T) {
	suite.Run(t, new(ListingServiceSuite))
}

func (s *ListingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewListingService(
		s.GetStores().ListingRepo,
		s.GetStores().ClientRepo,
		s.GetLogger(),
		s.GetDB(),
	)
	s.clientService = NewClientService(
		s.GetStores().ClientRepo,
		s.GetStores().ListingRepo,
		s.GetLogger(),
		s.GetDB(),
	)
}

func (s *ListingServiceSuite) listingRequest() dto.CreateListingRequest {
	return dto.CreateListingRequest{
		Title:     "Duplex with terrace",
		Address:   "12 Rue des Lilas",
		City:      "Lyon",
		Price:     decimal.NewFromInt(450000),
		Bedrooms:  3,
		Bathrooms: 2,
	}
}

func (s *ListingServiceSuite) TestCreateAndGetListing() {
	created, err := s.service.CreateListing(s.GetContext(), s.listingRequest())
	s.NoError(err)
	s.Equal(types.ListingStatusActive, created.ListingStatus)

	got, err := s.service.GetListing(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal("Lyon", got.City)
}

func (s *ListingServiceSuite) TestUpdateListing() {
	created, err := s.service.CreateListing(s.GetContext(), s.listingRequest())
	s.NoError(err)

	newPrice := decimal.NewFromInt(425000)
	updated, err := s.service.UpdateListing(s.GetContext(), created.ID, dto.UpdateListingRequest{
		Price: &newPrice,
	})
	s.NoError(err)
	s.True(newPrice.Equal(updated.Price))
	s.Equal(created.Title, updated.Title, "unset fields are untouched")
}

func (s *ListingServiceSuite) TestArchiveListing() {
	created, err := s.service.CreateListing(s.GetContext(), s.listingRequest())
	s.NoError(err)

	archived, err := s.service.ArchiveListing(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.ListingStatusArchived, archived.ListingStatus)

	// Archiving again is a no-op
	again, err := s.service.ArchiveListing(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.ListingStatusArchived, again.ListingStatus)
}

func (s *ListingServiceSuite) TestDeleteRejectedWhileAssigned() {
	created, err := s.service.CreateListing(s.GetContext(), s.listingRequest())
	s.NoError(err)

	client, err := s.clientService.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:  "Jean Martin",
		Email: "jean@example.com",
	})
	s.NoError(err)

	_, err = s.clientService.AssignListing(s.GetContext(), client.ID, dto.AssignListingRequest{
		ListingID: created.ID,
	})
	s.NoError(err)

	err = s.service.DeleteListing(s.GetContext(), created.ID)
	s.Error(err, "a listing in a portfolio cannot be removed")

	_, err = s.clientService.UnassignListing(s.GetContext(), client.ID, created.ID)
	s.NoError(err)

	err = s.service.DeleteListing(s.GetContext(), created.ID)
	s.NoError(err)
}

func (s *ListingServiceSuite) TestListListingsByCity() {
	_, err := s.service.CreateListing(s.GetContext(), s.listingRequest())
	s.NoError(err)

	other := s.listingRequest()
	other.City = "Paris"
	_, err = s.service.CreateListing(s.GetContext(), other)
	s.NoError(err)

	city := "Paris"
	resp, err := s.service.ListListings(s.GetContext(), &types.ListingFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
		City:        &city,
	})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
}
