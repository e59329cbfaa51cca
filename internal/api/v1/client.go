package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/propfolio/propfolio/internal/api/dto"
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/service"
	"github.com/propfolio/propfolio/internal/types"
)

type ClientHandler struct {
	clientService service.ClientService
	logger        *logger.Logger
}

func NewClientHandler(clientService service.ClientService, logger *logger.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// CreateClient registers a concierge client and mints a portal token
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClient returns a client by id
func (h *ClientHandler) GetClient(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid client id").Mark(ierr.ErrValidation))
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// ListClients lists clients with optional pagination
func (h *ClientHandler) ListClients(c *gin.Context) {
	var filter types.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid filter parameters").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.clientService.ListClients(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateClient edits a client
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid client id").Mark(ierr.ErrValidation))
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient removes a client
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid client id").Mark(ierr.ErrValidation))
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "client deleted successfully"})
}

// AssignListing adds a listing to the client's portfolio
func (h *ClientHandler) AssignListing(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid client id").Mark(ierr.ErrValidation))
		return
	}

	var req dto.AssignListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	client, err := h.clientService.AssignListing(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// UnassignListing removes a listing from the client's portfolio
func (h *ClientHandler) UnassignListing(c *gin.Context) {
	id := c.Param("id")
	listingID := c.Param("listing_id")
	if id == "" || listingID == "" {
		c.Error(ierr.NewError("invalid client or listing id").Mark(ierr.ErrValidation))
		return
	}

	client, err := h.clientService.UnassignListing(c.Request.Context(), id, listingID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, client)
}
