package model

import (
	"time"
)

// InvestorLead is a buyer-interest submission from the investor intake form.
type InvestorLead struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Metros    string    `db:"metros"`
	BuyBox    string    `db:"buy_box"`
}
