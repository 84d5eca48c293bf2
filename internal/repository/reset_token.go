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
	ErrResetTokenNotFound = errors.New("password reset token not found")
)

type ResetTokenRepository interface {
	Create(token *model.PasswordResetToken) error
	ByToken(token string) (*model.PasswordResetToken, error)
	DeleteByEmail(email string) error
	DeleteByToken(token string) error
}

type resetTokenRepository struct {
	db *sqlx.DB
}

func NewResetTokenRepository(db *sqlx.DB) ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

func (r *resetTokenRepository) Create(token *model.PasswordResetToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO password_reset_tokens (id, created_at, email, token, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(query,
		token.ID,
		token.CreatedAt,
		token.Email,
		token.Token,
		token.ExpiresAt,
	)
	return err
}

func (r *resetTokenRepository) ByToken(token string) (*model.PasswordResetToken, error) {
	t := &model.PasswordResetToken{}
	query := `SELECT * FROM password_reset_tokens WHERE token = $1`

	err := r.db.Get(t, query, token)
	if err == sql.ErrNoRows {
		return nil, ErrResetTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	return t, nil
}

// DeleteByEmail removes all tokens for an address, keeping at most one live
// token per email when a new one is issued.
func (r *resetTokenRepository) DeleteByEmail(email string) error {
	query := `DELETE FROM password_reset_tokens WHERE email = $1`
	_, err := r.db.Exec(query, email)
	return err
}

func (r *resetTokenRepository) DeleteByToken(token string) error {
	query := `DELETE FROM password_reset_tokens WHERE token = $1`
	_, err := r.db.Exec(query, token)
	return err
}
