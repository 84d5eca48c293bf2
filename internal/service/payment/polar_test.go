package payment

import (
	"net/http"
	"testing"

	"github.com/firesalehomes/firesale/internal/config"
	"github.com/firesalehomes/firesale/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolarWebhook_FailsClosed(t *testing.T) {
	t.Run("missing secret rejects delivery", func(t *testing.T) {
		// Signature verification is the endpoint's only authentication, so a
		// deployment without a secret must reject, not wave payloads through.
		p := NewPolarProvider(&config.Config{
			PolarAPIKey:      "key",
			PolarSandboxMode: true,
		}, nil)

		err := p.HandleWebhook([]byte(`{"type":"order.paid","data":{"id":"o_1","metadata":{"investor_id":"i","listing_id":"l"}}}`), http.Header{})
		require.Error(t, err)
	})

	t.Run("unsigned payload rejected when secret is set", func(t *testing.T) {
		p := NewPolarProvider(&config.Config{
			PolarAPIKey:        "key",
			PolarWebhookSecret: "whsec_test",
			PolarSandboxMode:   true,
		}, nil)

		err := p.HandleWebhook([]byte(`{"type":"order.paid"}`), http.Header{})
		require.Error(t, err)
	})
}

func TestNewProvider_PolarRequiresWebhookSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{
		PaymentProvider: model.ProviderPolar,
		PolarAPIKey:     "key",
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POLAR_WEBHOOK_SECRET")
}
