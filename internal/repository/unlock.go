package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/firesalehomes/firesale/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrUnlockNotFound  = errors.New("unlock not found")
	ErrDuplicateUnlock = errors.New("listing already unlocked by this investor")
)

type UnlockRepository interface {
	Create(unlock *model.ListingUnlock) error
	ByInvestorAndListing(investorID, listingID string) (*model.ListingUnlock, error)
	ActiveHolder(listingID string, now time.Time) (*model.ListingUnlock, error)
	ByInvestor(investorID string) ([]model.ListingUnlock, error)
}

type unlockRepository struct {
	db *sqlx.DB
}

func NewUnlockRepository(db *sqlx.DB) UnlockRepository {
	return &unlockRepository{db: db}
}

// Create inserts an unlock row. The (investor_id, listing_id) unique
// constraint is the idempotency guard for webhook re-delivery: a second
// insert for the same pair returns ErrDuplicateUnlock and writes nothing.
func (r *unlockRepository) Create(unlock *model.ListingUnlock) error {
	if unlock.ID == "" {
		unlock.ID = uuid.New().String()
	}
	if unlock.CreatedAt.IsZero() {
		unlock.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO listing_unlocks (id, created_at, investor_id, listing_id, exclusive_until, payment_ref, amount_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query,
		unlock.ID,
		unlock.CreatedAt,
		unlock.InvestorID,
		unlock.ListingID,
		unlock.ExclusiveUntil,
		unlock.PaymentRef,
		unlock.AmountCents,
	)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateUnlock
		}
		return err
	}

	return nil
}

func (r *unlockRepository) ByInvestorAndListing(investorID, listingID string) (*model.ListingUnlock, error) {
	unlock := &model.ListingUnlock{}
	query := `SELECT * FROM listing_unlocks WHERE investor_id = $1 AND listing_id = $2`

	err := r.db.Get(unlock, query, investorID, listingID)
	if err == sql.ErrNoRows {
		return nil, ErrUnlockNotFound
	}
	if err != nil {
		return nil, err
	}

	return unlock, nil
}

// ActiveHolder returns the unlock row whose investor currently holds the
// exclusivity window for a listing: the earliest-created row with
// exclusive_until still in the future (first-payer-wins when the
// confirmation race admitted more than one).
func (r *unlockRepository) ActiveHolder(listingID string, now time.Time) (*model.ListingUnlock, error) {
	unlock := &model.ListingUnlock{}
	query := `
		SELECT * FROM listing_unlocks
		WHERE listing_id = $1 AND exclusive_until > $2
		ORDER BY created_at ASC
		LIMIT 1
	`

	err := r.db.Get(unlock, query, listingID, now)
	if err == sql.ErrNoRows {
		return nil, ErrUnlockNotFound
	}
	if err != nil {
		return nil, err
	}

	return unlock, nil
}

func (r *unlockRepository) ByInvestor(investorID string) ([]model.ListingUnlock, error) {
	unlocks := []model.ListingUnlock{}
	query := `SELECT * FROM listing_unlocks WHERE investor_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&unlocks, query, investorID)
	if err != nil {
		return nil, err
	}

	return unlocks, nil
}
