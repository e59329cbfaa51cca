package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/service"
	"github.com/propfolio/propfolio/internal/types"
)

// PortalHandler serves the unauthenticated client-facing surface:
// portfolio pages addressed by access token and documents addressed by
// their public number.
type PortalHandler struct {
	documentService service.DocumentService
	clientService   service.ClientService
	logger          *logger.Logger
}

func NewPortalHandler(
	documentService service.DocumentService,
	clientService service.ClientService,
	logger *logger.Logger,
) *PortalHandler {
	return &PortalHandler{
		documentService: documentService,
		clientService:   clientService,
		logger:          logger,
	}
}

// GetPortfolio returns the listings assigned to the client owning the token
func (h *PortalHandler) GetPortfolio(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.Error(ierr.NewError("invalid portal token").Mark(ierr.ErrValidation))
		return
	}

	portfolio, err := h.clientService.GetPortfolioByToken(c.Request.Context(), token)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

// ViewDocument returns a document by its public number. Opening a sent
// document records the view; repeat opens are no-ops. Paid documents
// still render but record nothing, since paid is terminal.
func (h *PortalHandler) ViewDocument(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		c.Error(ierr.NewError("invalid document number").Mark(ierr.ErrValidation))
		return
	}

	doc, err := h.documentService.GetDocumentByNumber(c.Request.Context(), number)
	if err != nil {
		c.Error(err)
		return
	}

	if doc.DocumentStatus == types.DocumentStatusPaid {
		c.JSON(http.StatusOK, doc)
		return
	}

	viewed, err := h.documentService.MarkDocumentViewed(c.Request.Context(), doc.ID)
	if err != nil {
		// Draft documents are not visible through the portal
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, viewed)
}
