package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/service"
	"github.com/propfolio/propfolio/internal/webhook"
)

const eventPaymentSucceeded = "payment.succeeded"

// paymentEvent is the payload delivered by the payment provider
type paymentEvent struct {
	EventType      string `json:"event_type"`
	DocumentNumber string `json:"document_number"`
}

// PaymentWebhookHandler consumes signed payment provider callbacks and
// records payment confirmations. The signature check is the only
// authentication on this route.
type PaymentWebhookHandler struct {
	verifier        *webhook.Verifier
	documentService service.DocumentService
	logger          *logger.Logger
}

func NewPaymentWebhookHandler(
	verifier *webhook.Verifier,
	documentService service.DocumentService,
	logger *logger.Logger,
) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		verifier:        verifier,
		documentService: documentService,
		logger:          logger,
	}
}

// HandlePaymentWebhook verifies the payload signature and marks the
// referenced document paid on a payment.succeeded event
func (h *PaymentWebhookHandler) HandlePaymentWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(ierr.WithError(err).WithHint("failed to read payload").Mark(ierr.ErrValidation))
		return
	}

	if err := h.verifier.Verify(payload, c.Request.Header); err != nil {
		h.logger.Warnw("rejected payment webhook", "error", err)
		c.Error(err)
		return
	}

	var event paymentEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid webhook payload").Mark(ierr.ErrValidation))
		return
	}

	if event.EventType != eventPaymentSucceeded {
		h.logger.Debugw("ignoring payment webhook event", "event_type", event.EventType)
		c.JSON(http.StatusOK, gin.H{"message": "event ignored"})
		return
	}

	if event.DocumentNumber == "" {
		c.Error(ierr.NewError("document_number is required").
			WithHint("Webhook payload is missing the document number").
			Mark(ierr.ErrValidation))
		return
	}

	doc, err := h.documentService.GetDocumentByNumber(c.Request.Context(), event.DocumentNumber)
	if err != nil {
		c.Error(err)
		return
	}

	paid, err := h.documentService.MarkDocumentPaid(c.Request.Context(), doc.ID)
	if err != nil {
		c.Error(err)
		return
	}

	h.logger.Infow("payment confirmed via webhook",
		"document_number", paid.DocumentNumber,
	)
	c.JSON(http.StatusOK, paid)
}
