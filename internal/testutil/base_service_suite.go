package testutil

import (
	"context"
	"time"

	"github.com/propfolio/propfolio/internal/config"
	"github.com/propfolio/propfolio/internal/domain/client"
	"github.com/propfolio/propfolio/internal/domain/document"
	"github.com/propfolio/propfolio/internal/domain/listing"
	"github.com/propfolio/propfolio/internal/email"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/postgres"
	"github.com/propfolio/propfolio/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	DocumentRepo document.Repository
	ListingRepo  listing.Repository
	ClientRepo   client.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     postgres.IClient
	email  *email.Email
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.stores = Stores{}
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		DocumentRepo: NewInMemoryDocumentStore(),
		ListingRepo:  NewInMemoryListingStore(),
		ClientRepo:   NewInMemoryClientStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	// Email stays disabled in tests; sends become logged no-ops
	s.email = email.NewEmail(email.NewClient(s.config), s.logger)
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the mock db client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetEmail returns the disabled email service
func (s *BaseServiceTestSuite) GetEmail() *email.Email {
	return s.email
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the timestamp fixed at test setup
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
