package ctxkeys

import (
	"context"

	"github.com/firesalehomes/firesale/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	InvestorKey contextKey = "investor"
)

// Investor returns the authenticated investor from the request context, or
// nil for anonymous requests.
func Investor(ctx context.Context) *model.Investor {
	investor, _ := ctx.Value(InvestorKey).(*model.Investor)
	return investor
}

func WithInvestor(ctx context.Context, investor *model.Investor) context.Context {
	return context.WithValue(ctx, InvestorKey, investor)
}
