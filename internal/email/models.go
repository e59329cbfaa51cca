package email

// SendEmailRequest represents a request to send a plain text email
type SendEmailRequest struct {
	FromAddress string `json:"from_address" validate:"omitempty,email"`
	ToAddress   string `json:"to_address" validate:"required,email"`
	Subject     string `json:"subject" validate:"required"`
	Text        string `json:"text" validate:"required"`
}

// SendEmailResponse represents the response from sending an email
type SendEmailResponse struct {
	MessageID string
	Success   bool
	Error     string
}

// DocumentNotification carries everything the recipient message needs:
// the public number, who it is for, and the portal link where the
// document can be opened.
type DocumentNotification struct {
	DocumentNumber string
	DocumentType   string
	RecipientName  string
	RecipientEmail string
	Total          string
	DueDate        string
	PortalURL      string
}
