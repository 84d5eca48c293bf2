package handler

import (
	"net/http"

	"github.com/firesalehomes/firesale/internal/ctxkeys"
	"github.com/firesalehomes/firesale/internal/service"
)

type listingHandler struct {
	listingService *service.ListingService
}

func NewListingHandler(listingService *service.ListingService) *listingHandler {
	return &listingHandler{listingService: listingService}
}

// List returns the public masked catalog. No auth required; seller identity
// never appears here.
func (h *listingHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listingService.ListPublic()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"listings": listings})
}

// Get returns a single listing shaped for the current viewer. Anonymous
// viewers and investors without an unlock see the masked projection.
func (h *listingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listingID := r.PathValue("id")

	viewerID := ""
	if investor := ctxkeys.Investor(r.Context()); investor != nil {
		viewerID = investor.ID
	}

	detail, err := h.listingService.GetForViewer(listingID, viewerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}
