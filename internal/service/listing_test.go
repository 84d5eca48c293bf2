package service

import (
	"testing"
	"time"

	"github.com/firesalehomes/firesale/internal/model"
	"github.com/firesalehomes/firesale/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPublic_OrderingAndLockFlag(t *testing.T) {
	sellerLeads := newFakeSellerLeadRepo()
	unlocks := newFakeUnlockRepo()
	sellerLeads.unlocks = unlocks
	s := NewListingService(sellerLeads, unlocks)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	oldest := &model.SellerLead{
		Name:            "Ann Seller",
		Contact:         "ann@example.com",
		PropertyAddress: "1 Oak St",
		Timeline:        "asap",
		Condition:       "fair",
		CreatedAt:       now.Add(-72 * time.Hour),
	}
	middle := &model.SellerLead{
		Name:            "Bob Seller",
		Contact:         "bob@example.com",
		PropertyAddress: "2 Elm St",
		Timeline:        "30 days",
		Condition:       "good",
		CreatedAt:       now.Add(-48 * time.Hour),
	}
	newest := &model.SellerLead{
		Name:            "Cyd Seller",
		Contact:         "cyd@example.com",
		PropertyAddress: "3 Pine St",
		Timeline:        "flexible",
		Condition:       "poor",
		CreatedAt:       now.Add(-time.Hour),
	}
	for _, lead := range []*model.SellerLead{oldest, middle, newest} {
		require.NoError(t, sellerLeads.Create(lead))
	}

	// One open window and one already expired.
	require.NoError(t, unlocks.Create(&model.ListingUnlock{
		InvestorID:     "holder",
		ListingID:      middle.ID,
		CreatedAt:      now.Add(-time.Hour),
		ExclusiveUntil: now.Add(47 * time.Hour),
	}))
	require.NoError(t, unlocks.Create(&model.ListingUnlock{
		InvestorID:     "past-holder",
		ListingID:      oldest.ID,
		CreatedAt:      now.Add(-60 * time.Hour),
		ExclusiveUntil: now.Add(-12 * time.Hour),
	}))

	listings, err := s.ListPublic()
	require.NoError(t, err)
	require.Len(t, listings, 3)

	assert.Equal(t, newest.ID, listings[0].ID, "newest listing comes first")
	assert.Equal(t, middle.ID, listings[1].ID)
	assert.Equal(t, oldest.ID, listings[2].ID)

	assert.False(t, listings[0].IsExclusivelyLocked)
	assert.True(t, listings[1].IsExclusivelyLocked, "open window marks the listing locked")
	assert.False(t, listings[2].IsExclusivelyLocked, "expired window no longer locks")

	t.Run("lock flag clears once the window lapses", func(t *testing.T) {
		s.now = func() time.Time { return now.Add(48 * time.Hour) }

		listings, err := s.ListPublic()
		require.NoError(t, err)
		for _, l := range listings {
			assert.False(t, l.IsExclusivelyLocked, "listing %s", l.ID)
		}
	})
}

func TestGetForViewer_VisibilityGating(t *testing.T) {
	sellerLeads := newFakeSellerLeadRepo()
	unlocks := newFakeUnlockRepo()
	s := NewListingService(sellerLeads, unlocks)

	lead := seedListing(t, sellerLeads)
	otherLead := seedListing(t, sellerLeads)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, unlocks.Create(&model.ListingUnlock{
		InvestorID:     "holder",
		ListingID:      lead.ID,
		CreatedAt:      now.Add(-time.Hour),
		ExclusiveUntil: now.Add(47 * time.Hour),
	}))

	t.Run("anonymous viewer sees masked listing", func(t *testing.T) {
		detail, err := s.GetForViewer(lead.ID, "")
		require.NoError(t, err)

		assert.False(t, detail.IsUnlocked)
		assert.True(t, detail.IsExclusivelyLocked)
		assert.Nil(t, detail.SellerName)
		assert.Nil(t, detail.SellerContact)
		assert.Nil(t, detail.ExclusiveUntil)
	})

	t.Run("unlocking investor sees contact details", func(t *testing.T) {
		detail, err := s.GetForViewer(lead.ID, "holder")
		require.NoError(t, err)

		assert.True(t, detail.IsUnlocked)
		assert.False(t, detail.IsExclusivelyLocked, "own window does not lock the listing for its holder")
		require.NotNil(t, detail.SellerName)
		require.NotNil(t, detail.SellerContact)
		assert.Equal(t, lead.Name, *detail.SellerName)
		assert.Equal(t, lead.Contact, *detail.SellerContact)
	})

	t.Run("unlock of one listing grants nothing on another", func(t *testing.T) {
		detail, err := s.GetForViewer(otherLead.ID, "holder")
		require.NoError(t, err)

		assert.False(t, detail.IsUnlocked)
		assert.Nil(t, detail.SellerName)
		assert.Nil(t, detail.SellerContact)
	})

	t.Run("other authenticated investor stays masked and locked", func(t *testing.T) {
		detail, err := s.GetForViewer(lead.ID, "someone-else")
		require.NoError(t, err)

		assert.False(t, detail.IsUnlocked)
		assert.True(t, detail.IsExclusivelyLocked)
		assert.Nil(t, detail.SellerContact)
	})

	t.Run("unknown listing", func(t *testing.T) {
		_, err := s.GetForViewer("missing", "holder")
		assert.ErrorIs(t, err, repository.ErrListingNotFound)
	})

	t.Run("expired window unlocks for everyone", func(t *testing.T) {
		s.now = func() time.Time { return now.Add(72 * time.Hour) }

		detail, err := s.GetForViewer(lead.ID, "someone-else")
		require.NoError(t, err)
		assert.False(t, detail.IsExclusivelyLocked)
		assert.Nil(t, detail.SellerContact)
	})
}
