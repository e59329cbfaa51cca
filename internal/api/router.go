package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/propfolio/propfolio/internal/api/v1"
	"github.com/propfolio/propfolio/internal/config"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/rest/middleware"
)

type Handlers struct {
	Health         *v1.HealthHandler
	Document       *v1.DocumentHandler
	Listing        *v1.ListingHandler
	Client         *v1.ClientHandler
	Portal         *v1.PortalHandler
	PaymentWebhook *v1.PaymentWebhookHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Document routes
	documents := router.Group("/documents")
	{
		documents.POST("", handlers.Document.CreateDocument)
		documents.GET("", handlers.Document.ListDocuments)
		documents.GET("/:id", handlers.Document.GetDocument)
		documents.GET("/:id/render", handlers.Document.GetDocumentRenderData)
		documents.PUT("/:id", handlers.Document.UpdateDocument)
		documents.DELETE("/:id", handlers.Document.DeleteDocument)
		documents.POST("/:id/send", handlers.Document.SendDocument)
		documents.POST("/:id/pay", handlers.Document.MarkDocumentPaid)
	}

	// Listing routes
	listings := router.Group("/listings")
	{
		listings.POST("", handlers.Listing.CreateListing)
		listings.GET("", handlers.Listing.ListListings)
		listings.GET("/:id", handlers.Listing.GetListing)
		listings.PUT("/:id", handlers.Listing.UpdateListing)
		listings.POST("/:id/archive", handlers.Listing.ArchiveListing)
		listings.DELETE("/:id", handlers.Listing.DeleteListing)
	}

	// Client routes
	clients := router.Group("/clients")
	{
		clients.POST("", handlers.Client.CreateClient)
		clients.GET("", handlers.Client.ListClients)
		clients.GET("/:id", handlers.Client.GetClient)
		clients.PUT("/:id", handlers.Client.UpdateClient)
		clients.DELETE("/:id", handlers.Client.DeleteClient)
		clients.POST("/:id/listings", handlers.Client.AssignListing)
		clients.DELETE("/:id/listings/:listing_id", handlers.Client.UnassignListing)
	}

	// Public portal routes, addressed by token or document number
	portal := router.Group("/portal")
	{
		portal.GET("/portfolios/:token", handlers.Portal.GetPortfolio)
		portal.GET("/documents/:number", handlers.Portal.ViewDocument)
	}

	// Payment provider callbacks, authenticated by signature only
	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/payments", handlers.PaymentWebhook.HandlePaymentWebhook)
	}
}
