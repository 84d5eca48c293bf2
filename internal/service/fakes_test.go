package service

import (
	"sort"
	"sync"
	"time"

	"github.com/firesalehomes/firesale/internal/model"
	"github.com/firesalehomes/firesale/internal/repository"
	"github.com/google/uuid"
)

// In-memory repositories backing the service tests. The unlock fake mirrors
// the store's uniqueness and ordering behavior since those carry the
// idempotency and first-payer-wins semantics under test.

type fakeSellerLeadRepo struct {
	mu      sync.Mutex
	leads   map[string]*model.SellerLead
	unlocks *fakeUnlockRepo
}

func newFakeSellerLeadRepo() *fakeSellerLeadRepo {
	return &fakeSellerLeadRepo{leads: make(map[string]*model.SellerLead)}
}

func (f *fakeSellerLeadRepo) Create(lead *model.SellerLead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	copied := *lead
	f.leads[lead.ID] = &copied
	return nil
}

func (f *fakeSellerLeadRepo) ByID(id string) (*model.SellerLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	if !ok {
		return nil, repository.ErrListingNotFound
	}
	copied := *lead
	return &copied, nil
}

func (f *fakeSellerLeadRepo) All() ([]model.SellerLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	leads := make([]model.SellerLead, 0, len(f.leads))
	for _, lead := range f.leads {
		leads = append(leads, *lead)
	}
	return leads, nil
}

// PublicListings mirrors the store's projection: newest first, each row
// annotated with whether any unlock window is still open at now.
func (f *fakeSellerLeadRepo) PublicListings(now time.Time) ([]model.PublicListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	listings := make([]model.PublicListing, 0, len(f.leads))
	for _, lead := range f.leads {
		locked := false
		if f.unlocks != nil {
			holder, err := f.unlocks.ActiveHolder(lead.ID, now)
			locked = err == nil && holder != nil
		}
		listings = append(listings, model.PublicListing{
			ID:                  lead.ID,
			CreatedAt:           lead.CreatedAt,
			PropertyAddress:     lead.PropertyAddress,
			Timeline:            lead.Timeline,
			Condition:           lead.Condition,
			Reason:              lead.Reason,
			IsExclusivelyLocked: locked,
		})
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

type fakeUnlockRepo struct {
	mu      sync.Mutex
	unlocks []*model.ListingUnlock
}

func newFakeUnlockRepo() *fakeUnlockRepo {
	return &fakeUnlockRepo{}
}

func (f *fakeUnlockRepo) Create(unlock *model.ListingUnlock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.unlocks {
		if u.InvestorID == unlock.InvestorID && u.ListingID == unlock.ListingID {
			return repository.ErrDuplicateUnlock
		}
	}
	if unlock.ID == "" {
		unlock.ID = uuid.New().String()
	}
	if unlock.CreatedAt.IsZero() {
		unlock.CreatedAt = time.Now()
	}
	copied := *unlock
	f.unlocks = append(f.unlocks, &copied)
	return nil
}

func (f *fakeUnlockRepo) ByInvestorAndListing(investorID, listingID string) (*model.ListingUnlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.unlocks {
		if u.InvestorID == investorID && u.ListingID == listingID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUnlockNotFound
}

func (f *fakeUnlockRepo) ActiveHolder(listingID string, now time.Time) (*model.ListingUnlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var earliest *model.ListingUnlock
	for _, u := range f.unlocks {
		if u.ListingID != listingID || !u.ExclusiveUntil.After(now) {
			continue
		}
		if earliest == nil || u.CreatedAt.Before(earliest.CreatedAt) {
			earliest = u
		}
	}
	if earliest == nil {
		return nil, repository.ErrUnlockNotFound
	}
	copied := *earliest
	return &copied, nil
}

func (f *fakeUnlockRepo) ByInvestor(investorID string) ([]model.ListingUnlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	unlocks := []model.ListingUnlock{}
	for _, u := range f.unlocks {
		if u.InvestorID == investorID {
			unlocks = append(unlocks, *u)
		}
	}
	return unlocks, nil
}

func (f *fakeUnlockRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.unlocks)
}

type fakeInvestorRepo struct {
	mu        sync.Mutex
	investors map[string]*model.Investor
}

func newFakeInvestorRepo() *fakeInvestorRepo {
	return &fakeInvestorRepo{investors: make(map[string]*model.Investor)}
}

func (f *fakeInvestorRepo) Create(investor *model.Investor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.investors {
		if existing.Email == investor.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if investor.ID == "" {
		investor.ID = uuid.New().String()
	}
	copied := *investor
	f.investors[investor.ID] = &copied
	return nil
}

func (f *fakeInvestorRepo) ByID(id string) (*model.Investor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	investor, ok := f.investors[id]
	if !ok {
		return nil, repository.ErrInvestorNotFound
	}
	copied := *investor
	return &copied, nil
}

func (f *fakeInvestorRepo) ByEmail(email string) (*model.Investor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, investor := range f.investors {
		if investor.Email == email {
			copied := *investor
			return &copied, nil
		}
	}
	return nil, repository.ErrInvestorNotFound
}

func (f *fakeInvestorRepo) UpdatePasswordByEmail(email, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, investor := range f.investors {
		if investor.Email == email {
			investor.PasswordHash = passwordHash
			return nil
		}
	}
	return repository.ErrInvestorNotFound
}

type fakeResetTokenRepo struct {
	mu     sync.Mutex
	tokens []*model.PasswordResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{}
}

func (f *fakeResetTokenRepo) Create(token *model.PasswordResetToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	copied := *token
	f.tokens = append(f.tokens, &copied)
	return nil
}

func (f *fakeResetTokenRepo) ByToken(token string) (*model.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.Token == token {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repository.ErrResetTokenNotFound
}

func (f *fakeResetTokenRepo) DeleteByEmail(email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.tokens[:0]
	for _, t := range f.tokens {
		if t.Email != email {
			kept = append(kept, t)
		}
	}
	f.tokens = kept
	return nil
}

func (f *fakeResetTokenRepo) DeleteByToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.tokens[:0]
	for _, t := range f.tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	f.tokens = kept
	return nil
}

func (f *fakeResetTokenRepo) countForEmail(email string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tokens {
		if t.Email == email {
			n++
		}
	}
	return n
}

type fakeInvestorLeadRepo struct {
	mu    sync.Mutex
	leads []model.InvestorLead
}

func newFakeInvestorLeadRepo() *fakeInvestorLeadRepo {
	return &fakeInvestorLeadRepo{}
}

func (f *fakeInvestorLeadRepo) Create(lead *model.InvestorLead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	f.leads = append(f.leads, *lead)
	return nil
}

func (f *fakeInvestorLeadRepo) All() ([]model.InvestorLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.InvestorLead{}, f.leads...), nil
}

// newTestEmailService runs in dev mode: sends are logged, never delivered.
func newTestEmailService() *EmailService {
	return NewEmailService("", "test@firesalehomes.com", "admin@firesalehomes.com", "http://localhost:8090", "FireSaleHomes", true)
}
