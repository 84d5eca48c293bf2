package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/firesalehomes/firesale/internal/config"
	"github.com/firesalehomes/firesale/internal/model"
	"github.com/firesalehomes/firesale/internal/service"
	polargo "github.com/polarsource/polar-go"
	"github.com/polarsource/polar-go/models/components"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
)

type PolarProvider struct {
	cfg           *config.Config
	unlockService *service.UnlockService
	client        *polargo.Polar
}

func NewPolarProvider(cfg *config.Config, unlockService *service.UnlockService) *PolarProvider {
	var serverOption polargo.SDKOption
	if cfg.PolarSandboxMode {
		serverOption = polargo.WithServer(polargo.ServerSandbox)
		slog.Info("polar using sandbox mode", "app_env", cfg.AppEnv)
	} else {
		serverOption = polargo.WithServer(polargo.ServerProduction)
		slog.Info("polar using production mode", "app_env", cfg.AppEnv)
	}

	client := polargo.New(
		polargo.WithSecurity(cfg.PolarAPIKey),
		serverOption,
	)

	return &PolarProvider{
		cfg:           cfg,
		unlockService: unlockService,
		client:        client,
	}
}

func (p *PolarProvider) Name() string {
	return model.ProviderPolar
}

func (p *PolarProvider) CreateCheckoutURL(investor *model.Investor, listing *model.SellerLead) (string, error) {
	ctx := context.Background()

	if p.cfg.PolarProductIDUnlock == "" {
		return "", fmt.Errorf("POLAR_PRODUCT_ID_UNLOCK is not configured")
	}

	successURL := fmt.Sprintf("%s/listings/%s?unlocked=1", p.cfg.AppURL, listing.ID)
	returnURL := fmt.Sprintf("%s/listings/%s", p.cfg.AppURL, listing.ID)

	metadata := map[string]components.CheckoutCreateMetadata{
		"investor_id": components.CreateCheckoutCreateMetadataStr(investor.ID),
		"listing_id":  components.CreateCheckoutCreateMetadataStr(listing.ID),
	}

	res, err := p.client.Checkouts.Create(ctx, components.CheckoutCreate{
		Products:      []string{p.cfg.PolarProductIDUnlock},
		SuccessURL:    polargo.String(successURL),
		ReturnURL:     polargo.String(returnURL),
		CustomerEmail: polargo.String(investor.Email),
		CustomerName:  polargo.String(investor.Name),
		Metadata:      metadata,
	})

	if err != nil {
		return "", fmt.Errorf("failed to create checkout: %w", err)
	}

	if res == nil || res.Checkout == nil {
		return "", fmt.Errorf("checkout response is nil")
	}

	slog.Info("polar checkout created", "investor_id", investor.ID, "listing_id", listing.ID, "checkout_id", res.Checkout.ID)
	return res.Checkout.URL, nil
}

func (p *PolarProvider) HandleWebhook(payload []byte, headers http.Header) error {
	webhookID := headers.Get("webhook-id")
	timestamp := headers.Get("webhook-timestamp")
	signature := headers.Get("webhook-signature")

	// Signature verification is the only authentication on this endpoint.
	// A missing secret fails closed, same as a bad signature.
	if p.cfg.PolarWebhookSecret == "" {
		return fmt.Errorf("polar webhook secret is not configured, rejecting delivery")
	}

	wh, err := standardwebhooks.NewWebhookRaw([]byte(p.cfg.PolarWebhookSecret))
	if err != nil {
		return fmt.Errorf("failed to create webhook verifier: %w", err)
	}

	httpHeaders := http.Header{}
	httpHeaders.Set("webhook-id", webhookID)
	httpHeaders.Set("webhook-timestamp", timestamp)
	httpHeaders.Set("webhook-signature", signature)

	err = wh.Verify(payload, httpHeaders)
	if err != nil {
		return fmt.Errorf("invalid webhook signature: %w", err)
	}

	var event struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}

	err = json.Unmarshal(payload, &event)
	if err != nil {
		slog.Error("polar failed to parse webhook", "error", err)
		return nil
	}

	slog.Info("polar webhook received", "event_type", event.Type)

	switch event.Type {
	case "order.paid":
		p.handleOrderPaid(event.Data)
	default:
		slog.Info("polar webhook ignored event type", "event_type", event.Type)
	}

	// Acknowledged once the signature checks out; see the Provider contract.
	return nil
}

func (p *PolarProvider) handleOrderPaid(data json.RawMessage) {
	var order struct {
		ID       string            `json:"id"`
		Metadata map[string]string `json:"metadata"`
	}

	err := json.Unmarshal(data, &order)
	if err != nil {
		slog.Error("polar failed to parse order data", "error", err)
		return
	}

	investorID := order.Metadata["investor_id"]
	listingID := order.Metadata["listing_id"]
	if investorID == "" || listingID == "" {
		slog.Warn("polar order missing unlock metadata, skipping", "order_id", order.ID)
		return
	}

	err = p.unlockService.ConfirmPayment(investorID, listingID, order.ID)
	if err != nil {
		slog.Error("polar failed to record unlock", "error", err,
			"investor_id", investorID, "listing_id", listingID, "order_id", order.ID)
		return
	}

	slog.Info("polar order paid", "investor_id", investorID, "listing_id", listingID, "order_id", order.ID)
}
