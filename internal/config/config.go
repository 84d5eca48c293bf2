package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret        string
	JWTExpiry        time.Duration
	ResetTokenExpiry time.Duration
	AdminAccessToken string

	// Marketplace
	UnlockPriceCents  int
	ExclusivityWindow time.Duration

	// Email
	EmailFrom    string
	AdminEmail   string
	ResendAPIKey string

	// Payment
	PaymentProvider string // "stripe" or "polar"
	// Payment - Stripe
	StripeSecretKey     string
	StripeWebhookSecret string
	// Payment - Polar
	PolarAPIKey          string
	PolarWebhookSecret   string
	PolarSandboxMode     bool
	PolarProductIDUnlock string

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "FireSaleHomes"),
		AppEnv:  envString("APP_ENV", "development"),
		AppURL:  envString("APP_URL", "http://localhost:8090"),
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/firesale.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security (dev fallbacks; production is validated below)
		JWTSecret:        envString("JWT_SECRET", "firesale-dev-secret-change-in-production"),
		JWTExpiry:        envDuration("JWT_EXPIRY", 168*time.Hour),                     // 7 days
		ResetTokenExpiry: envDuration("TOKEN_PASSWORD_RESET_EXPIRY", 1*time.Hour),      // 1 hour
		AdminAccessToken: envString("ADMIN_ACCESS_TOKEN", ""),

		// Marketplace
		UnlockPriceCents:  envInt("UNLOCK_PRICE_CENTS", 100000),                        // $1,000
		ExclusivityWindow: envDuration("EXCLUSIVITY_WINDOW", 48*time.Hour),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "FireSaleHomes <noreply@firesalehomes.com>"),
		AdminEmail:   envString("ADMIN_EMAIL", "admin@firesalehomes.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Payment (provider selection and configuration)
		PaymentProvider:      envString("PAYMENT_PROVIDER", "stripe"),
		StripeSecretKey:      envString("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:  envString("STRIPE_WEBHOOK_SECRET", ""),
		PolarAPIKey:          envString("POLAR_API_KEY", ""),
		PolarWebhookSecret:   envString("POLAR_WEBHOOK_SECRET", ""),
		PolarSandboxMode:     envBool("POLAR_SANDBOX_MODE", envString("APP_ENV", "development") == "development"),
		PolarProductIDUnlock: envString("POLAR_PRODUCT_ID_UNLOCK", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures secrets with dev fallbacks are actually set for
// production deployments. Development allows fallback modes for local testing.
func validateProduction(cfg *Config) {
	if cfg.JWTSecret == "firesale-dev-secret-change-in-production" {
		slog.Error("production deployment requires JWT_SECRET")
		os.Exit(1)
	}
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
