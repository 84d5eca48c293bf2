package model

import (
	"time"
)

// DefaultUnlockPriceCents is the flat fee charged for unlocking a lead.
const DefaultUnlockPriceCents = 100000 // $1,000

// Payment provider names as they appear in config and logs.
const (
	ProviderStripe = "stripe"
	ProviderPolar  = "polar"
)

// ListingUnlock records a confirmed payment granting an investor access to a
// seller lead's contact details. At most one row exists per
// (investor_id, listing_id) pair; the unique constraint in the store is what
// makes duplicate webhook deliveries a no-op.
//
// Exclusivity is derived, never stored as a flag: a listing is exclusively
// locked iff an unlock row exists with exclusive_until strictly in the
// future, and the earliest-created such row's investor is the holder.
type ListingUnlock struct {
	ID             string    `db:"id"`
	CreatedAt      time.Time `db:"created_at"`
	InvestorID     string    `db:"investor_id"`
	ListingID      string    `db:"listing_id"`
	ExclusiveUntil time.Time `db:"exclusive_until"`
	PaymentRef     *string   `db:"payment_ref"`
	AmountCents    int       `db:"amount_cents"`
}

// ActiveAt reports whether the unlock's exclusivity window covers t.
// The boundary is exclusive: at exactly exclusive_until the window is over.
func (u *ListingUnlock) ActiveAt(t time.Time) bool {
	return u.ExclusiveUntil.After(t)
}

// UnlockedListing is a dashboard row: a listing with full seller contact,
// joined with the investor's unlock.
type UnlockedListing struct {
	ID              string    `json:"id"`
	PropertyAddress string    `json:"propertyAddress"`
	Timeline        string    `json:"timeline"`
	Condition       string    `json:"condition"`
	Reason          string    `json:"reason"`
	SellerName      string    `json:"name"`
	SellerContact   string    `json:"contact"`
	UnlockedAt      time.Time `json:"unlockedAt"`
	ExclusiveUntil  time.Time `json:"exclusiveUntil"`
}
