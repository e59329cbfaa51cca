package service

import (
	"testing"

	"github.com/propfolio/propfolio/internal/api/dto"
	"github.com/propfolio/propfolio/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ClientServiceSuite struct {
	testutil.BaseServiceTestSuite
	service        ClientService
	listingService ListingService
}

func TestClientService(t *testing.T) {
	suite.Run(t, new(ClientServiceSuite))
}

func (s *ClientServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewClientService(
		s.GetStores().ClientRepo,
		s.GetStores().ListingRepo,
		s.GetLogger(),
		s.GetDB(),
	)
	s.listingService = NewListingService(
		s.GetStores().ListingRepo,
		s.GetStores().ClientRepo,
		s.GetLogger(),
		s.GetDB(),
	)
}

func (s *ClientServiceSuite) createListing(city string) *dto.ListingResponse {
	listing, err := s.listingService.CreateListing(s.GetContext(), dto.CreateListingRequest{
		Title:    "Test listing",
		Address:  "1 Test Street",
		City:     city,
		Price:    decimal.NewFromInt(300000),
		Bedrooms: 2,
	})
	s.Require().NoError(err)
	return listing
}

func (s *ClientServiceSuite) TestCreateClientMintsAccessToken() {
	created, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:  "Jean Martin",
		Email: "jean@example.com",
	})
	s.NoError(err)
	s.NotEmpty(created.AccessToken)
}

func (s *ClientServiceSuite) TestAssignAndUnassignListing() {
	client, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:  "Jean Martin",
		Email: "jean@example.com",
	})
	s.NoError(err)

	listing := s.createListing("Lyon")

	updated, err := s.service.AssignListing(s.GetContext(), client.ID, dto.AssignListingRequest{
		ListingID: listing.ID,
	})
	s.NoError(err)
	s.Contains(updated.ListingIDs, listing.ID)

	// Assigning twice is rejected
	_, err = s.service.AssignListing(s.GetContext(), client.ID, dto.AssignListingRequest{
		ListingID: listing.ID,
	})
	s.Error(err)

	updated, err = s.service.UnassignListing(s.GetContext(), client.ID, listing.ID)
	s.NoError(err)
	s.NotContains(updated.ListingIDs, listing.ID)

	// Unassigning a listing that is not in the portfolio is rejected
	_, err = s.service.UnassignListing(s.GetContext(), client.ID, listing.ID)
	s.Error(err)
}

func (s *ClientServiceSuite) TestAssignArchivedListingRejected() {
	client, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:  "Jean Martin",
		Email: "jean@example.com",
	})
	s.NoError(err)

	listing := s.createListing("Lyon")
	_, err = s.listingService.ArchiveListing(s.GetContext(), listing.ID)
	s.NoError(err)

	_, err = s.service.AssignListing(s.GetContext(), client.ID, dto.AssignListingRequest{
		ListingID: listing.ID,
	})
	s.Error(err)
}

func (s *ClientServiceSuite) TestGetPortfolioByToken() {
	client, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:  "Jean Martin",
		Email: "jean@example.com",
	})
	s.NoError(err)

	active := s.createListing("Lyon")
	archived := s.createListing("Paris")

	_, err = s.service.AssignListing(s.GetContext(), client.ID, dto.AssignListingRequest{ListingID: active.ID})
	s.NoError(err)
	_, err = s.service.AssignListing(s.GetContext(), client.ID, dto.AssignListingRequest{ListingID: archived.ID})
	s.NoError(err)

	// Archive one assigned listing; it disappears from the portal view
	_, err = s.listingService.ArchiveListing(s.GetContext(), archived.ID)
	s.NoError(err)

	portfolio, err := s.service.GetPortfolioByToken(s.GetContext(), client.AccessToken)
	s.NoError(err)
	s.Equal("Jean Martin", portfolio.ClientName)
	s.Len(portfolio.Listings, 1)
	s.Equal(active.ID, portfolio.Listings[0].ID)

	_, err = s.service.GetPortfolioByToken(s.GetContext(), "unknown-token")
	s.Error(err)
}
