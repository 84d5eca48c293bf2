package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/firesalehomes/firesale/internal/model"
	"github.com/firesalehomes/firesale/internal/repository"
)

// ListingService projects seller leads into viewer-appropriate shapes.
// Exclusivity is always evaluated lazily against the current clock; expired
// unlock rows are never swept, they just stop matching.
type ListingService struct {
	sellerLeadRepository repository.SellerLeadRepository
	unlockRepository     repository.UnlockRepository
	now                  func() time.Time
}

func NewListingService(
	sellerLeadRepository repository.SellerLeadRepository,
	unlockRepository repository.UnlockRepository,
) *ListingService {
	return &ListingService{
		sellerLeadRepository: sellerLeadRepository,
		unlockRepository:     unlockRepository,
		now:                  time.Now,
	}
}

// ListPublic returns all listings newest first with the exclusivity flag.
// Seller identity never appears in this projection.
func (s *ListingService) ListPublic() ([]model.PublicListing, error) {
	return s.sellerLeadRepository.PublicListings(s.now())
}

// GetForViewer returns the listing detail for a given viewer.
// viewerInvestorID is empty for anonymous viewers. Seller name, contact and
// the exclusivity expiry are included only when the viewer holds a confirmed
// unlock row for this listing; holding an unlock for a different listing
// grants nothing here.
func (s *ListingService) GetForViewer(listingID, viewerInvestorID string) (*model.ListingDetail, error) {
	lead, err := s.sellerLeadRepository.ByID(listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	detail := &model.ListingDetail{
		ID:              lead.ID,
		CreatedAt:       lead.CreatedAt,
		PropertyAddress: lead.PropertyAddress,
		Timeline:        lead.Timeline,
		Condition:       lead.Condition,
		Reason:          lead.Reason,
	}

	holder, err := s.unlockRepository.ActiveHolder(listingID, s.now())
	if err != nil && !errors.Is(err, repository.ErrUnlockNotFound) {
		return nil, fmt.Errorf("failed to check exclusivity: %w", err)
	}

	// Locked relative to the viewer: a window held by the viewer themselves
	// does not count.
	if holder != nil && holder.InvestorID != viewerInvestorID {
		detail.IsExclusivelyLocked = true
	}

	if viewerInvestorID == "" {
		return detail, nil
	}

	unlock, err := s.unlockRepository.ByInvestorAndListing(viewerInvestorID, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrUnlockNotFound) {
			return detail, nil
		}
		return nil, fmt.Errorf("failed to check unlock: %w", err)
	}

	detail.IsUnlocked = true
	detail.SellerName = &lead.Name
	detail.SellerContact = &lead.Contact
	detail.ExclusiveUntil = &unlock.ExclusiveUntil

	return detail, nil
}
