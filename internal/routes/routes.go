package routes

import (
	"net/http"
	"time"

	"github.com/firesalehomes/firesale/internal/app"
	"github.com/firesalehomes/firesale/internal/handler"
	"github.com/firesalehomes/firesale/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	lead := handler.NewLeadHandler(app.LeadService)
	investor := handler.NewInvestorHandler(app.AuthService, app.UnlockService)
	listing := handler.NewListingHandler(app.ListingService)
	checkout := handler.NewCheckoutHandler(app.UnlockService, app.PaymentProvider)
	admin := handler.NewAdminHandler(app.LeadService, app.Cfg.AdminAccessToken, app.Cfg.IsProduction())
	health := handler.NewHealthHandler(app.DB)

	// One limiter instance backs every throttled route; keys are prefixed per
	// route so the budgets stay independent.
	limiter := middleware.NewFixedWindowLimiter()
	limitLogin := middleware.RateLimit(limiter, "login", 5, time.Minute)
	limitSignup := middleware.RateLimit(limiter, "signup", 3, 5*time.Minute)
	limitReset := middleware.RateLimit(limiter, "password-reset", 3, 15*time.Minute)
	limitSeller := middleware.RateLimit(limiter, "seller-form", 5, time.Hour)
	limitAdmin := middleware.RateLimit(limiter, "admin-login", 5, time.Minute)

	requireAdmin := middleware.RequireAdmin(app.Cfg.AdminAccessToken)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Intake forms
	mux.HandleFunc("POST /seller", limitSeller(lead.SubmitSellerLead))
	mux.HandleFunc("POST /investor", lead.SubmitInvestorLead)

	// Catalog (viewer-aware; anonymous gets the masked projection)
	mux.HandleFunc("GET /listings", listing.List)
	mux.HandleFunc("GET /listings/{id}", listing.Get)

	// Investor auth
	mux.HandleFunc("POST /investor/signup", limitSignup(investor.Signup))
	mux.HandleFunc("POST /investor/login", limitLogin(investor.Login))
	mux.HandleFunc("POST /investor/logout", investor.Logout)
	mux.HandleFunc("POST /investor/forgot-password", limitReset(investor.ForgotPassword))
	mux.HandleFunc("POST /investor/reset-password", investor.ResetPassword)

	// Health probe
	mux.HandleFunc("GET /health", health.Health)

	// ============================================================================
	// PROTECTED ROUTES (session cookie)
	// ============================================================================

	mux.HandleFunc("GET /investor/me", middleware.RequireInvestor(investor.Me))
	mux.HandleFunc("GET /investor/dashboard", middleware.RequireInvestor(investor.Dashboard))
	mux.HandleFunc("POST /checkout", middleware.RequireInvestor(checkout.Checkout))

	// ============================================================================
	// ADMIN
	// ============================================================================

	mux.HandleFunc("POST /admin/login", limitAdmin(admin.Login))
	mux.HandleFunc("GET /admin/leads", requireAdmin(admin.Leads))

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	// Payment provider webhook (works with both Polar and Stripe)
	mux.HandleFunc("POST /webhook/payment", checkout.Webhook)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.InvestorRepository),
	)

	return handler
}
