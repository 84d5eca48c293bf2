package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/firesalehomes/firesale/internal/model"
	"github.com/firesalehomes/firesale/internal/repository"
)

var (
	ErrAlreadyUnlocked   = errors.New("you have already unlocked this listing")
	ErrExclusivelyLocked = errors.New("this listing is currently under exclusive review by another investor")
)

// UnlockService coordinates the checkout/confirmation flow for paid lead
// unlocks.
//
// There is no persisted pending state: between AuthorizeCheckout and
// ConfirmPayment the only record of an in-flight purchase lives with the
// payment provider. AuthorizeCheckout's check-then-act is therefore not
// atomic against a competing investor starting checkout at the same moment;
// the race is arbitrated at confirmation time instead. If both investors
// complete payment, both unlock rows are admitted (the unique constraint is
// per investor+listing, not per listing) and the earliest row's investor is
// reported as the exclusive holder. The system prefers never blocking a paid
// customer over strict single-holder exclusivity.
type UnlockService struct {
	sellerLeadRepository repository.SellerLeadRepository
	unlockRepository     repository.UnlockRepository
	investorRepository   repository.InvestorRepository
	emailService         *EmailService
	exclusivityWindow    time.Duration
	priceCents           int
	now                  func() time.Time
}

func NewUnlockService(
	sellerLeadRepository repository.SellerLeadRepository,
	unlockRepository repository.UnlockRepository,
	investorRepository repository.InvestorRepository,
	emailService *EmailService,
	exclusivityWindow time.Duration,
	priceCents int,
) *UnlockService {
	return &UnlockService{
		sellerLeadRepository: sellerLeadRepository,
		unlockRepository:     unlockRepository,
		investorRepository:   investorRepository,
		emailService:         emailService,
		exclusivityWindow:    exclusivityWindow,
		priceCents:           priceCents,
		now:                  time.Now,
	}
}

// PriceCents is the flat unlock fee passed to the payment provider.
func (s *UnlockService) PriceCents() int {
	return s.priceCents
}

// AuthorizeCheckout verifies the preconditions for starting a checkout and
// returns the listing for the provider's line item. It fails with
// repository.ErrListingNotFound, ErrAlreadyUnlocked, or ErrExclusivelyLocked.
// No reservation is taken; see the type comment for the accepted race.
func (s *UnlockService) AuthorizeCheckout(investorID, listingID string) (*model.SellerLead, error) {
	lead, err := s.sellerLeadRepository.ByID(listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	_, err = s.unlockRepository.ByInvestorAndListing(investorID, listingID)
	if err == nil {
		return nil, ErrAlreadyUnlocked
	}
	if !errors.Is(err, repository.ErrUnlockNotFound) {
		return nil, fmt.Errorf("failed to check existing unlock: %w", err)
	}

	holder, err := s.unlockRepository.ActiveHolder(listingID, s.now())
	if err != nil && !errors.Is(err, repository.ErrUnlockNotFound) {
		return nil, fmt.Errorf("failed to check exclusivity: %w", err)
	}
	if holder != nil && holder.InvestorID != investorID {
		return nil, ErrExclusivelyLocked
	}

	return lead, nil
}

// ConfirmPayment records a confirmed unlock. It is invoked from the payment
// provider's webhook, which delivers at least once: a duplicate delivery for
// an already-unlocked pair hits the store's unique constraint and is
// swallowed as a no-op so the provider gets its acknowledgement either way.
// The exclusivity window starts at confirmation, not at checkout.
func (s *UnlockService) ConfirmPayment(investorID, listingID, paymentRef string) error {
	unlock := &model.ListingUnlock{
		InvestorID:     investorID,
		ListingID:      listingID,
		CreatedAt:      s.now(),
		ExclusiveUntil: s.now().Add(s.exclusivityWindow),
		AmountCents:    s.priceCents,
	}
	if paymentRef != "" {
		unlock.PaymentRef = &paymentRef
	}

	err := s.unlockRepository.Create(unlock)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUnlock) {
			slog.Info("duplicate payment confirmation ignored",
				"investor_id", investorID, "listing_id", listingID, "payment_ref", paymentRef)
			return nil
		}
		return fmt.Errorf("failed to create unlock: %w", err)
	}

	slog.Info("listing unlocked",
		"investor_id", investorID, "listing_id", listingID,
		"exclusive_until", unlock.ExclusiveUntil, "payment_ref", paymentRef)

	go s.sendUnlockConfirmation(investorID, listingID, unlock.ExclusiveUntil)

	return nil
}

func (s *UnlockService) sendUnlockConfirmation(investorID, listingID string, exclusiveUntil time.Time) {
	investor, err := s.investorRepository.ByID(investorID)
	if err != nil {
		slog.Error("failed to load investor for unlock confirmation", "error", err, "investor_id", investorID)
		return
	}

	lead, err := s.sellerLeadRepository.ByID(listingID)
	if err != nil {
		slog.Error("failed to load listing for unlock confirmation", "error", err, "listing_id", listingID)
		return
	}

	err = s.emailService.SendUnlockConfirmation(investor.Email, investor.Name, lead, exclusiveUntil)
	if err != nil {
		slog.Error("failed to send unlock confirmation", "error", err, "investor_id", investorID)
	}
}

// ExclusiveHolder reports which investor, if any, currently holds the
// exclusivity window for a listing. First payer wins for display purposes;
// a listing with no live window is open to everyone equally.
func (s *UnlockService) ExclusiveHolder(listingID string) (*model.ListingUnlock, error) {
	holder, err := s.unlockRepository.ActiveHolder(listingID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrUnlockNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return holder, nil
}

// UnlockedListings returns the investor's unlocked leads with full seller
// contact details, newest unlock first.
func (s *UnlockService) UnlockedListings(investorID string) ([]model.UnlockedListing, error) {
	unlocks, err := s.unlockRepository.ByInvestor(investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unlocks: %w", err)
	}

	listings := make([]model.UnlockedListing, 0, len(unlocks))
	for _, unlock := range unlocks {
		lead, err := s.sellerLeadRepository.ByID(unlock.ListingID)
		if err != nil {
			if errors.Is(err, repository.ErrListingNotFound) {
				slog.Warn("unlock references missing listing", "listing_id", unlock.ListingID)
				continue
			}
			return nil, fmt.Errorf("failed to get listing: %w", err)
		}

		listings = append(listings, model.UnlockedListing{
			ID:              lead.ID,
			PropertyAddress: lead.PropertyAddress,
			Timeline:        lead.Timeline,
			Condition:       lead.Condition,
			Reason:          lead.Reason,
			SellerName:      lead.Name,
			SellerContact:   lead.Contact,
			UnlockedAt:      unlock.CreatedAt,
			ExclusiveUntil:  unlock.ExclusiveUntil,
		})
	}

	return listings, nil
}
