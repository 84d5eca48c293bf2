package model

import (
	"time"
)

// SellerLead is a property listing submitted through the seller intake form.
// Rows are append-only: a lead is never updated or deleted so the admin view
// retains full history.
type SellerLead struct {
	ID              string    `db:"id"`
	CreatedAt       time.Time `db:"created_at"`
	PropertyAddress string    `db:"property_address"`
	Timeline        string    `db:"timeline"`
	Condition       string    `db:"condition"`
	Reason          string    `db:"reason"`
	Name            string    `db:"name"`
	Contact         string    `db:"contact"`
}

// PublicListing is the masked projection of a seller lead shown to everyone.
// Seller name and contact are never part of this shape.
type PublicListing struct {
	ID                  string    `json:"id"`
	CreatedAt           time.Time `json:"createdAt"`
	PropertyAddress     string    `json:"propertyAddress"`
	Timeline            string    `json:"timeline"`
	Condition           string    `json:"condition"`
	Reason              string    `json:"reason"`
	IsExclusivelyLocked bool      `json:"isExclusivelyLocked"`
}

// ListingDetail is the viewer-aware projection of a seller lead. Seller name,
// contact and the exclusivity expiry are only populated when the viewer holds
// a confirmed unlock for the listing.
type ListingDetail struct {
	ID                  string     `json:"id"`
	CreatedAt           time.Time  `json:"createdAt"`
	PropertyAddress     string     `json:"propertyAddress"`
	Timeline            string     `json:"timeline"`
	Condition           string     `json:"condition"`
	Reason              string     `json:"reason"`
	IsUnlocked          bool       `json:"isUnlocked"`
	IsExclusivelyLocked bool       `json:"isExclusivelyLocked"`
	SellerName          *string    `json:"name,omitempty"`
	SellerContact       *string    `json:"contact,omitempty"`
	ExclusiveUntil      *time.Time `json:"exclusiveUntil,omitempty"`
}
