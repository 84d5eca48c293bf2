package handler

import (
	"net/http"

	"github.com/firesalehomes/firesale/internal/service"
)

type leadHandler struct {
	leadService *service.LeadService
}

func NewLeadHandler(leadService *service.LeadService) *leadHandler {
	return &leadHandler{leadService: leadService}
}

// SubmitSellerLead handles the free seller intake form.
func (h *leadHandler) SubmitSellerLead(w http.ResponseWriter, r *http.Request) {
	var input service.SellerLeadInput
	err := decodeJSON(r, &input)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lead, err := h.leadService.SubmitSellerLead(input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"id": lead.ID})
}

// SubmitInvestorLead handles the buyer-interest intake form.
func (h *leadHandler) SubmitInvestorLead(w http.ResponseWriter, r *http.Request) {
	var input service.InvestorLeadInput
	err := decodeJSON(r, &input)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lead, err := h.leadService.SubmitInvestorLead(input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"id": lead.ID})
}
