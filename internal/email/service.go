package email

import (
	"context"
	"fmt"

	"github.com/propfolio/propfolio/internal/logger"
)

// Email handles outbound notification delivery
type Email struct {
	client *Client
	logger *logger.Logger
}

// NewEmail creates a new email service
func NewEmail(client *Client, logger *logger.Logger) *Email {
	return &Email{
		client: client,
		logger: logger,
	}
}

// SendEmail sends a plain text email
func (s *Email) SendEmail(ctx context.Context, req SendEmailRequest) (*SendEmailResponse, error) {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping email send",
			"to", req.ToAddress,
			"subject", req.Subject,
		)
		return &SendEmailResponse{
			Success: false,
			Error:   "email client is disabled",
		}, nil
	}

	fromAddress := req.FromAddress
	if fromAddress == "" {
		fromAddress = s.client.GetFromAddress()
	}

	messageID, err := s.client.SendEmail(ctx, fromAddress, req.ToAddress, req.Subject, "", req.Text)
	if err != nil {
		s.logger.Errorw("failed to send email",
			"error", err,
			"to", req.ToAddress,
			"subject", req.Subject,
		)
		return &SendEmailResponse{
			Success: false,
			Error:   err.Error(),
		}, err
	}

	s.logger.Infow("email sent successfully",
		"message_id", messageID,
		"to", req.ToAddress,
		"subject", req.Subject,
	)

	return &SendEmailResponse{
		MessageID: messageID,
		Success:   true,
	}, nil
}

// SendDocumentNotification notifies a recipient that a document was sent
// to them. Delivery is best effort: the caller treats a failure here as
// a log line, never as a reason to undo the status change that
// triggered the notification.
func (s *Email) SendDocumentNotification(ctx context.Context, n DocumentNotification) (*SendEmailResponse, error) {
	subject := fmt.Sprintf("%s %s from Propfolio", n.DocumentType, n.DocumentNumber)

	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"A new %s (%s) for %s is available.\n",
		n.RecipientName, n.DocumentType, n.DocumentNumber, n.Total,
	)
	if n.DueDate != "" {
		body += fmt.Sprintf("It is due on %s.\n", n.DueDate)
	}
	if n.PortalURL != "" {
		body += fmt.Sprintf("\nYou can view it here: %s\n", n.PortalURL)
	}
	body += "\nThank you,\nPropfolio"

	return s.SendEmail(ctx, SendEmailRequest{
		ToAddress: n.RecipientEmail,
		Subject:   subject,
		Text:      body,
	})
}
