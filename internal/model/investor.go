package model

import (
	"time"
)

// Investor is a registered marketplace account. The password hash is only
// mutated through the reset flow.
type Investor struct {
	ID           string    `db:"id"`
	CreatedAt    time.Time `db:"created_at"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Company      *string   `db:"company"`
	Phone        *string   `db:"phone"`
}

// Summary returns the shape safe to expose to the investor's own client.
func (i *Investor) Summary() InvestorSummary {
	return InvestorSummary{
		ID:    i.ID,
		Email: i.Email,
		Name:  i.Name,
	}
}

type InvestorSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
