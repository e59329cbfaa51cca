package repository

import (
	"github.com/propfolio/propfolio/internal/cache"
	"github.com/propfolio/propfolio/internal/config"
	"github.com/propfolio/propfolio/internal/domain/client"
	"github.com/propfolio/propfolio/internal/domain/document"
	"github.com/propfolio/propfolio/internal/domain/listing"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/postgres"
	postgresRepo "github.com/propfolio/propfolio/internal/repository/postgres"
)

func NewDocumentRepository(db *postgres.DB, cfg *config.Configuration, c *cache.InMemoryCache, logger *logger.Logger) document.Repository {
	return postgresRepo.NewDocumentRepository(db, cfg, c, logger)
}

func NewListingRepository(db *postgres.DB, c *cache.InMemoryCache, logger *logger.Logger) listing.Repository {
	return postgresRepo.NewListingRepository(db, c, logger)
}

func NewClientRepository(db *postgres.DB, c *cache.InMemoryCache, logger *logger.Logger) client.Repository {
	return postgresRepo.NewClientRepository(db, c, logger)
}
