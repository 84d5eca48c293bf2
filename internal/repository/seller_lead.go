package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/firesalehomes/firesale/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type SellerLeadRepository interface {
	Create(lead *model.SellerLead) error
	ByID(id string) (*model.SellerLead, error)
	All() ([]model.SellerLead, error)
	PublicListings(now time.Time) ([]model.PublicListing, error)
}

type sellerLeadRepository struct {
	db *sqlx.DB
}

func NewSellerLeadRepository(db *sqlx.DB) SellerLeadRepository {
	return &sellerLeadRepository{db: db}
}

func (r *sellerLeadRepository) Create(lead *model.SellerLead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO seller_leads (id, created_at, property_address, timeline, condition, reason, name, contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(query,
		lead.ID,
		lead.CreatedAt,
		lead.PropertyAddress,
		lead.Timeline,
		lead.Condition,
		lead.Reason,
		lead.Name,
		lead.Contact,
	)
	return err
}

func (r *sellerLeadRepository) ByID(id string) (*model.SellerLead, error) {
	lead := &model.SellerLead{}
	query := `SELECT * FROM seller_leads WHERE id = $1`

	err := r.db.Get(lead, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}

	return lead, nil
}

// All returns every seller lead oldest first, for the admin view.
func (r *sellerLeadRepository) All() ([]model.SellerLead, error) {
	leads := []model.SellerLead{}
	query := `SELECT * FROM seller_leads ORDER BY created_at ASC`

	err := r.db.Select(&leads, query)
	if err != nil {
		return nil, err
	}

	return leads, nil
}

// publicListingRow carries the lock annotation alongside the lead columns.
type publicListingRow struct {
	model.SellerLead
	IsLocked bool `db:"is_locked"`
}

// PublicListings returns all listings newest first, each annotated with
// whether any unlock's exclusivity window is still open at now. Seller name
// and contact are dropped from the projection here, not left to the caller.
func (r *sellerLeadRepository) PublicListings(now time.Time) ([]model.PublicListing, error) {
	rows := []publicListingRow{}
	query := `
		SELECT sl.*,
		       EXISTS(
		           SELECT 1 FROM listing_unlocks lu
		           WHERE lu.listing_id = sl.id AND lu.exclusive_until > $1
		       ) AS is_locked
		FROM seller_leads sl
		ORDER BY sl.created_at DESC
	`

	err := r.db.Select(&rows, query, now)
	if err != nil {
		return nil, err
	}

	listings := make([]model.PublicListing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, model.PublicListing{
			ID:                  row.ID,
			CreatedAt:           row.CreatedAt,
			PropertyAddress:     row.PropertyAddress,
			Timeline:            row.Timeline,
			Condition:           row.Condition,
			Reason:              row.Reason,
			IsExclusivelyLocked: row.IsLocked,
		})
	}

	return listings, nil
}
