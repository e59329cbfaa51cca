package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/propfolio/propfolio/internal/api"
	v1 "github.com/propfolio/propfolio/internal/api/v1"
	"github.com/propfolio/propfolio/internal/cache"
	"github.com/propfolio/propfolio/internal/config"
	"github.com/propfolio/propfolio/internal/email"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/postgres"
	"github.com/propfolio/propfolio/internal/repository"
	"github.com/propfolio/propfolio/internal/service"
	"github.com/propfolio/propfolio/internal/validator"
	"github.com/propfolio/propfolio/internal/webhook"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Request validation is package-level state consumed via
	// validator.ValidateRequest, not an injected dependency, so it has
	// to be initialized eagerly rather than provided lazily.
	opts = append(opts,
		fx.Invoke(validator.NewValidator),
	)

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Postgres
			postgres.NewDB,
			providePostgresClient,

			// Email
			email.NewClient,
			email.NewEmail,

			// Webhook verification
			webhook.NewVerifier,

			// Repositories
			repository.NewDocumentRepository,
			repository.NewListingRepository,
			repository.NewClientRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewDocumentService,
			service.NewListingService,
			service.NewClientService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func providePostgresClient(db *postgres.DB) postgres.IClient {
	return db
}

func provideHandlers(
	logger *logger.Logger,
	documentService service.DocumentService,
	listingService service.ListingService,
	clientService service.ClientService,
	verifier *webhook.Verifier,
) api.Handlers {
	return api.Handlers{
		Health:         v1.NewHealthHandler(logger),
		Document:       v1.NewDocumentHandler(documentService, logger),
		Listing:        v1.NewListingHandler(listingService, logger),
		Client:         v1.NewClientHandler(clientService, logger),
		Portal:         v1.NewPortalHandler(documentService, clientService, logger),
		PaymentWebhook: v1.NewPaymentWebhookHandler(verifier, documentService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
