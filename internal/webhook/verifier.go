package webhook

import (
	"net/http"

	"github.com/propfolio/propfolio/internal/config"
	ierr "github.com/propfolio/propfolio/internal/errors"
	svix "github.com/svix/svix-webhooks/go"
)

// Verifier checks the signature of inbound payment provider webhooks.
// When no secret is configured verification is disabled and every
// payload is rejected, so an unconfigured deployment can never be
// driven by unsigned requests.
type Verifier struct {
	wh      *svix.Webhook
	enabled bool
}

// NewVerifier creates a webhook verifier from configuration
func NewVerifier(cfg *config.Configuration) (*Verifier, error) {
	if cfg.Payment.WebhookSecret == "" {
		return &Verifier{enabled: false}, nil
	}

	wh, err := svix.NewWebhook(cfg.Payment.WebhookSecret)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid webhook secret").
			Mark(ierr.ErrSystem)
	}

	return &Verifier{wh: wh, enabled: true}, nil
}

// IsEnabled reports whether a webhook secret is configured
func (v *Verifier) IsEnabled() bool {
	return v.enabled
}

// Verify validates the payload signature against the configured secret
func (v *Verifier) Verify(payload []byte, headers http.Header) error {
	if !v.enabled {
		return ierr.NewError("webhook verification is not configured").
			WithHint("Payment webhooks are disabled").
			Mark(ierr.ErrPermissionDenied)
	}

	if err := v.wh.Verify(payload, headers); err != nil {
		return ierr.WithError(err).
			WithHint("Webhook signature verification failed").
			Mark(ierr.ErrPermissionDenied)
	}
	return nil
}
