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

type ListingHandler struct {
	listingService service.ListingService
	logger         *logger.Logger
}

func NewListingHandler(listingService service.ListingService, logger *logger.Logger) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		logger:         logger,
	}
}

// CreateListing adds a listing to the catalogue
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// GetListing returns a listing by id
func (h *ListingHandler) GetListing(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid listing id").Mark(ierr.ErrValidation))
		return
	}

	listing, err := h.listingService.GetListing(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// ListListings lists catalogue entries with optional filtering
func (h *ListingHandler) ListListings(c *gin.Context) {
	var filter types.ListingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid filter parameters").Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.listingService.ListListings(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateListing edits a listing
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid listing id").Mark(ierr.ErrValidation))
		return
	}

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	listing, err := h.listingService.UpdateListing(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// ArchiveListing marks a listing as no longer assignable
func (h *ListingHandler) ArchiveListing(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid listing id").Mark(ierr.ErrValidation))
		return
	}

	listing, err := h.listingService.ArchiveListing(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// DeleteListing removes a listing not present in any portfolio
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid listing id").Mark(ierr.ErrValidation))
		return
	}

	if err := h.listingService.DeleteListing(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "listing deleted successfully"})
}
