package app

import (
	"fmt"

	"github.com/firesalehomes/firesale/internal/config"
	"github.com/firesalehomes/firesale/internal/db"
	"github.com/firesalehomes/firesale/internal/repository"
	"github.com/firesalehomes/firesale/internal/service"
	"github.com/firesalehomes/firesale/internal/service/payment"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	InvestorRepository repository.InvestorRepository
	AuthService        *service.AuthService
	EmailService       *service.EmailService
	LeadService        *service.LeadService
	ListingService     *service.ListingService
	UnlockService      *service.UnlockService
	PaymentProvider    payment.Provider
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	sellerLeadRepository := repository.NewSellerLeadRepository(database)
	investorLeadRepository := repository.NewInvestorLeadRepository(database)
	investorRepository := repository.NewInvestorRepository(database)
	unlockRepository := repository.NewUnlockRepository(database)
	resetTokenRepository := repository.NewResetTokenRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AdminEmail,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	leadService := service.NewLeadService(sellerLeadRepository, investorLeadRepository, emailService)
	listingService := service.NewListingService(sellerLeadRepository, unlockRepository)
	unlockService := service.NewUnlockService(
		sellerLeadRepository,
		unlockRepository,
		investorRepository,
		emailService,
		cfg.ExclusivityWindow,
		cfg.UnlockPriceCents,
	)
	authService := service.NewAuthService(
		investorRepository,
		resetTokenRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.ResetTokenExpiry,
	)

	// Initialize payment provider based on config
	paymentProvider, err := payment.NewProvider(cfg, unlockService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment provider: %v", err)
	}

	return &App{
		Cfg:                cfg,
		DB:                 database,
		InvestorRepository: investorRepository,
		AuthService:        authService,
		EmailService:       emailService,
		LeadService:        leadService,
		ListingService:     listingService,
		UnlockService:      unlockService,
		PaymentProvider:    paymentProvider,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
