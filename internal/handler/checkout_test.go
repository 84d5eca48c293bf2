package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/firesalehomes/firesale/internal/model"
	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	webhookErr  error
	checkoutURL string
	checkoutErr error
	calls       int
}

func (s *stubProvider) CreateCheckoutURL(investor *model.Investor, listing *model.SellerLead) (string, error) {
	return s.checkoutURL, s.checkoutErr
}

func (s *stubProvider) HandleWebhook(payload []byte, headers http.Header) error {
	s.calls++
	return s.webhookErr
}

func (s *stubProvider) Name() string { return "stub" }

func TestWebhook_AcknowledgeSemantics(t *testing.T) {
	t.Run("verified delivery gets a 200", func(t *testing.T) {
		provider := &stubProvider{}
		h := NewCheckoutHandler(nil, provider)

		r := httptest.NewRequest(http.MethodPost, "/webhook/payment", strings.NewReader(`{"type":"checkout.session.completed"}`))
		w := httptest.NewRecorder()
		h.Webhook(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, provider.calls)
	})

	t.Run("signature failure gets a 400", func(t *testing.T) {
		provider := &stubProvider{webhookErr: errors.New("invalid webhook signature")}
		h := NewCheckoutHandler(nil, provider)

		r := httptest.NewRequest(http.MethodPost, "/webhook/payment", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		h.Webhook(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate delivery is acknowledged twice", func(t *testing.T) {
		provider := &stubProvider{}
		h := NewCheckoutHandler(nil, provider)

		for i := 0; i < 2; i++ {
			r := httptest.NewRequest(http.MethodPost, "/webhook/payment", strings.NewReader(`{"type":"checkout.session.completed"}`))
			w := httptest.NewRecorder()
			h.Webhook(w, r)
			assert.Equal(t, http.StatusOK, w.Code)
		}
		assert.Equal(t, 2, provider.calls)
	})
}
