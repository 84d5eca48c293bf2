package payment

import (
	"net/http"

	"github.com/firesalehomes/firesale/internal/model"
)

// Provider abstracts the external payment processor behind the unlock flow.
type Provider interface {
	// CreateCheckoutURL creates a hosted checkout session for the flat unlock
	// fee and returns its URL. The investor and listing ids travel as session
	// metadata and come back on the webhook.
	CreateCheckoutURL(investor *model.Investor, listing *model.SellerLead) (string, error)

	// HandleWebhook verifies and processes a webhook delivery. It returns an
	// error only when the signature cannot be verified; callers translate
	// that into a 400. Everything after verification is acknowledged even on
	// internal failure, since the provider retries and the unlock store is
	// idempotent.
	HandleWebhook(payload []byte, headers http.Header) error

	// Name returns the provider name (e.g., "polar", "stripe")
	Name() string
}
