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
	ErrInvestorNotFound = errors.New("investor not found")
	ErrDuplicateEmail   = errors.New("email already exists")
)

type InvestorRepository interface {
	Create(investor *model.Investor) error
	ByID(id string) (*model.Investor, error)
	ByEmail(email string) (*model.Investor, error)
	UpdatePasswordByEmail(email, passwordHash string) error
}

type investorRepository struct {
	db *sqlx.DB
}

func NewInvestorRepository(db *sqlx.DB) InvestorRepository {
	return &investorRepository{db: db}
}

func (r *investorRepository) Create(investor *model.Investor) error {
	if investor.ID == "" {
		investor.ID = uuid.New().String()
	}
	if investor.CreatedAt.IsZero() {
		investor.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO investors (id, created_at, email, password_hash, name, company, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query,
		investor.ID,
		investor.CreatedAt,
		investor.Email,
		investor.PasswordHash,
		investor.Name,
		investor.Company,
		investor.Phone,
	)
	if err != nil {
		// Check for unique constraint violation (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *investorRepository) ByID(id string) (*model.Investor, error) {
	investor := &model.Investor{}
	query := `SELECT * FROM investors WHERE id = $1`

	err := r.db.Get(investor, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrInvestorNotFound
	}
	if err != nil {
		return nil, err
	}

	return investor, nil
}

func (r *investorRepository) ByEmail(email string) (*model.Investor, error) {
	investor := &model.Investor{}
	query := `SELECT * FROM investors WHERE email = $1`

	err := r.db.Get(investor, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrInvestorNotFound
	}
	if err != nil {
		return nil, err
	}

	return investor, nil
}

func (r *investorRepository) UpdatePasswordByEmail(email, passwordHash string) error {
	query := `UPDATE investors SET password_hash = $1 WHERE email = $2`

	result, err := r.db.Exec(query, passwordHash, email)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrInvestorNotFound
	}

	return nil
}
