package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/firesalehomes/firesale/internal/model"
	"github.com/firesalehomes/firesale/internal/repository"
	"github.com/firesalehomes/firesale/internal/validation"
)

// ValidationError reports the first violated field of a form submission.
// Handlers map it to a 400 response with the message as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type LeadService struct {
	sellerLeadRepository   repository.SellerLeadRepository
	investorLeadRepository repository.InvestorLeadRepository
	emailService           *EmailService
}

func NewLeadService(
	sellerLeadRepository repository.SellerLeadRepository,
	investorLeadRepository repository.InvestorLeadRepository,
	emailService *EmailService,
) *LeadService {
	return &LeadService{
		sellerLeadRepository:   sellerLeadRepository,
		investorLeadRepository: investorLeadRepository,
		emailService:           emailService,
	}
}

type SellerLeadInput struct {
	PropertyAddress string `json:"propertyAddress"`
	Timeline        string `json:"timeline"`
	Condition       string `json:"condition"`
	Reason          string `json:"reason"`
	Name            string `json:"name"`
	Contact         string `json:"contact"`
}

type InvestorLeadInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Metros string `json:"metros"`
	BuyBox string `json:"buyBox"`
}

// SubmitSellerLead validates and persists a seller submission, then fires
// notification emails without blocking the response. Resubmission creates a
// new, independent listing row; there is no dedup.
func (s *LeadService) SubmitSellerLead(input SellerLeadInput) (*model.SellerLead, error) {
	input.PropertyAddress = validation.Sanitize(input.PropertyAddress)
	input.Name = validation.Sanitize(input.Name)
	input.Contact = validation.Sanitize(input.Contact)

	if err := validation.ValidateAddress(input.PropertyAddress); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := validation.ValidateBucket("timeline", input.Timeline, 50); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := validation.ValidateBucket("condition", input.Condition, 50); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := validation.ValidateBucket("reason", input.Reason, 100); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := validation.ValidateName(input.Name); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := validation.ValidateContact(input.Contact); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	lead := &model.SellerLead{
		PropertyAddress: input.PropertyAddress,
		Timeline:        input.Timeline,
		Condition:       input.Condition,
		Reason:          input.Reason,
		Name:            input.Name,
		Contact:         input.Contact,
	}

	err := s.sellerLeadRepository.Create(lead)
	if err != nil {
		return nil, fmt.Errorf("failed to save seller lead: %w", err)
	}

	slog.Info("seller lead created", "lead_id", lead.ID, "address", lead.PropertyAddress)

	// Notifications are best-effort: the seller already has their result,
	// so a failure here is logged and goes no further.
	go s.notifySellerLead(lead)

	return lead, nil
}

func (s *LeadService) notifySellerLead(lead *model.SellerLead) {
	err := s.emailService.SendSellerLeadNotification(lead)
	if err != nil {
		slog.Error("failed to send seller lead notification", "error", err, "lead_id", lead.ID)
	}

	// The contact field is free-form; only email-shaped contacts get a
	// confirmation message.
	if strings.Contains(lead.Contact, "@") {
		err = s.emailService.SendSellerConfirmation(lead.Contact, lead.Name)
		if err != nil {
			slog.Error("failed to send seller confirmation", "error", err, "lead_id", lead.ID)
		}
	}
}

// SubmitInvestorLead validates and persists a buyer-interest submission.
func (s *LeadService) SubmitInvestorLead(input InvestorLeadInput) (*model.InvestorLead, error) {
	input.Name = validation.Sanitize(input.Name)
	input.Email = validation.NormalizeEmail(input.Email)
	input.Metros = validation.Sanitize(input.Metros)
	input.BuyBox = validation.Sanitize(input.BuyBox)

	if err := validation.ValidateName(input.Name); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if input.Metros == "" {
		return nil, &ValidationError{Message: "metros is required"}
	}
	if input.BuyBox == "" {
		return nil, &ValidationError{Message: "buyBox is required"}
	}

	lead := &model.InvestorLead{
		Name:   input.Name,
		Email:  input.Email,
		Metros: input.Metros,
		BuyBox: input.BuyBox,
	}

	err := s.investorLeadRepository.Create(lead)
	if err != nil {
		return nil, fmt.Errorf("failed to save investor lead: %w", err)
	}

	slog.Info("investor lead created", "lead_id", lead.ID)
	return lead, nil
}

// SellerLeads returns all seller leads for the admin view.
func (s *LeadService) SellerLeads() ([]model.SellerLead, error) {
	return s.sellerLeadRepository.All()
}

// InvestorLeads returns all investor leads for the admin view.
func (s *LeadService) InvestorLeads() ([]model.InvestorLead, error) {
	return s.investorLeadRepository.All()
}
