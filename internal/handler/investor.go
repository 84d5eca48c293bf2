package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/firesalehomes/firesale/internal/ctxkeys"
	"github.com/firesalehomes/firesale/internal/service"
)

type investorHandler struct {
	authService   *service.AuthService
	unlockService *service.UnlockService
}

func NewInvestorHandler(authService *service.AuthService, unlockService *service.UnlockService) *investorHandler {
	return &investorHandler{
		authService:   authService,
		unlockService: unlockService,
	}
}

func (h *investorHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Company  string `json:"company"`
		Phone    string `json:"phone"`
	}
	err := decodeJSON(r, &input)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	investor, err := h.authService.Signup(service.SignupInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Company:  input.Company,
		Phone:    input.Phone,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(investor)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	h.authService.SetSessionCookie(w, token, h.authService.SessionExpiry())

	respondJSON(w, http.StatusCreated, investor.Summary())
}

func (h *investorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &input)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	investor, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(investor)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	h.authService.SetSessionCookie(w, token, h.authService.SessionExpiry())

	slog.Info("investor logged in", "investor_id", investor.ID)
	respondJSON(w, http.StatusOK, investor.Summary())
}

func (h *investorHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *investorHandler) Me(w http.ResponseWriter, r *http.Request) {
	investor := ctxkeys.Investor(r.Context())
	respondJSON(w, http.StatusOK, investor.Summary())
}

// Dashboard returns the investor's profile plus every lead they have paid to
// unlock, contact details included.
func (h *investorHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	investor := ctxkeys.Investor(r.Context())

	listings, err := h.unlockService.UnlockedListings(investor.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"investor":         investor.Summary(),
		"unlockedListings": listings,
	})
}

// ForgotPassword always reports success so the endpoint cannot be used to
// probe which emails are registered.
func (h *investorHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	err := decodeJSON(r, &input)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.authService.RequestPasswordReset(input.Email)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			respondError(w, http.StatusBadRequest, validationErr.Message)
			return
		}
		slog.Warn("password reset request failed", "error", err)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "If that email is registered, a reset link is on its way.",
	})
}

func (h *investorHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &input)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.authService.ResetPassword(input.Token, input.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
