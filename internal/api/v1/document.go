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

type DocumentHandler struct {
	documentService service.DocumentService
	logger          *logger.Logger
}

func NewDocumentHandler(documentService service.DocumentService, logger *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// CreateDocument creates a draft invoice or quote with a server-assigned number
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to create document", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// GetDocument returns a document by internal id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid document id").Mark(ierr.ErrValidation))
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// ListDocuments lists documents with optional filtering
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	var filter types.DocumentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid filter parameters").Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.documentService.ListDocuments(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateDocument edits a draft document, replacing its line items
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid document id").Mark(ierr.ErrValidation))
		return
	}

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// DeleteDocument removes a draft document
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid document id").Mark(ierr.ErrValidation))
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "document deleted successfully"})
}

// GetDocumentRenderData returns the flattened print model for a document
func (h *DocumentHandler) GetDocumentRenderData(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid document id").Mark(ierr.ErrValidation))
		return
	}

	data, err := h.documentService.GetDocumentRenderData(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// SendDocument transitions a draft to sent and notifies the recipient
func (h *DocumentHandler) SendDocument(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid document id").Mark(ierr.ErrValidation))
		return
	}

	doc, err := h.documentService.SendDocument(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// MarkDocumentPaid records payment confirmation for a sent or viewed document
func (h *DocumentHandler) MarkDocumentPaid(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid document id").Mark(ierr.ErrValidation))
		return
	}

	doc, err := h.documentService.MarkDocumentPaid(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, doc)
}
