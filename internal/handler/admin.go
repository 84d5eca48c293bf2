package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/firesalehomes/firesale/internal/middleware"
	"github.com/firesalehomes/firesale/internal/service"
)

type adminHandler struct {
	leadService  *service.LeadService
	adminToken   string
	isProduction bool
}

func NewAdminHandler(leadService *service.LeadService, adminToken string, isProduction bool) *adminHandler {
	return &adminHandler{
		leadService:  leadService,
		adminToken:   adminToken,
		isProduction: isProduction,
	}
}

// Login exchanges the shared admin secret for the admin session cookie.
func (h *adminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token string `json:"token"`
	}
	err := decodeJSON(r, &input)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.adminToken == "" || subtle.ConstantTimeCompare([]byte(input.Token), []byte(h.adminToken)) != 1 {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName(),
		Value:    h.adminToken,
		Expires:  time.Now().Add(24 * time.Hour),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Leads returns every seller and investor submission, oldest first.
func (h *adminHandler) Leads(w http.ResponseWriter, r *http.Request) {
	sellerLeads, err := h.leadService.SellerLeads()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	investorLeads, err := h.leadService.InvestorLeads()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"sellerLeads":   sellerLeads,
		"investorLeads": investorLeads,
	})
}
