package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/firesalehomes/firesale/internal/ctxkeys"
	"github.com/firesalehomes/firesale/internal/service"
	"github.com/firesalehomes/firesale/internal/service/payment"
)

type checkoutHandler struct {
	unlockService   *service.UnlockService
	paymentProvider payment.Provider
}

func NewCheckoutHandler(unlockService *service.UnlockService, paymentProvider payment.Provider) *checkoutHandler {
	return &checkoutHandler{
		unlockService:   unlockService,
		paymentProvider: paymentProvider,
	}
}

// Checkout starts a paid unlock. Preconditions are checked here but not
// reserved; the webhook arbitrates any race at confirmation time.
func (h *checkoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	investor := ctxkeys.Investor(r.Context())

	var input struct {
		ListingID string `json:"listingId"`
	}
	err := decodeJSON(r, &input)
	if err != nil || input.ListingID == "" {
		respondError(w, http.StatusBadRequest, "listingId is required")
		return
	}

	listing, err := h.unlockService.AuthorizeCheckout(investor.ID, input.ListingID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	url, err := h.paymentProvider.CreateCheckoutURL(investor, listing)
	if err != nil {
		slog.Error("failed to create checkout", "error", err,
			"provider", h.paymentProvider.Name(), "investor_id", investor.ID, "listing_id", listing.ID)
		respondError(w, http.StatusInternalServerError, "Payment service is unavailable. Please try again.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Webhook receives payment provider callbacks. The only failure surfaced to
// the provider is a bad signature; everything past verification is
// acknowledged so retries stay pointed at a store that is idempotent anyway.
func (h *checkoutHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	err = h.paymentProvider.HandleWebhook(payload, r.Header)
	if err != nil {
		slog.Warn("webhook rejected", "error", err, "provider", h.paymentProvider.Name())
		respondError(w, http.StatusBadRequest, "Invalid webhook signature")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}
