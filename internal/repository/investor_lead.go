package repository

import (
	"time"

	"github.com/firesalehomes/firesale/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type InvestorLeadRepository interface {
	Create(lead *model.InvestorLead) error
	All() ([]model.InvestorLead, error)
}

type investorLeadRepository struct {
	db *sqlx.DB
}

func NewInvestorLeadRepository(db *sqlx.DB) InvestorLeadRepository {
	return &investorLeadRepository{db: db}
}

func (r *investorLeadRepository) Create(lead *model.InvestorLead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO investor_leads (id, created_at, name, email, metros, buy_box)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query,
		lead.ID,
		lead.CreatedAt,
		lead.Name,
		lead.Email,
		lead.Metros,
		lead.BuyBox,
	)
	return err
}

// All returns every investor lead oldest first, for the admin view.
func (r *investorLeadRepository) All() ([]model.InvestorLead, error) {
	leads := []model.InvestorLead{}
	query := `SELECT * FROM investor_leads ORDER BY created_at ASC`

	err := r.db.Select(&leads, query)
	if err != nil {
		return nil, err
	}

	return leads, nil
}
