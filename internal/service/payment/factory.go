package payment

import (
	"fmt"
	"log/slog"

	"github.com/firesalehomes/firesale/internal/config"
	"github.com/firesalehomes/firesale/internal/model"
	"github.com/firesalehomes/firesale/internal/service"
)

// NewProvider creates a payment provider based on configuration
func NewProvider(cfg *config.Config, unlockService *service.UnlockService) (Provider, error) {
	provider := cfg.PaymentProvider

	slog.Info("initializing payment provider", "provider", provider)

	switch provider {
	case model.ProviderPolar:
		if cfg.PolarAPIKey == "" {
			return nil, fmt.Errorf("POLAR_API_KEY is required when using Polar provider")
		}
		if cfg.PolarWebhookSecret == "" {
			return nil, fmt.Errorf("POLAR_WEBHOOK_SECRET is required when using Polar provider")
		}
		return NewPolarProvider(cfg, unlockService), nil

	case model.ProviderStripe:
		if cfg.StripeSecretKey == "" {
			return nil, fmt.Errorf("STRIPE_SECRET_KEY is required when using Stripe provider")
		}
		if cfg.StripeWebhookSecret == "" {
			return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required when using Stripe provider")
		}
		return NewStripeProvider(cfg, unlockService), nil

	default:
		return nil, fmt.Errorf("unknown payment provider: %s (supported: polar, stripe)", provider)
	}
}
