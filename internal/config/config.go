package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	JWTSecret           string
	JWTTTL              time.Duration
	StripeSecretKey     string
	StripeWebhookSecret string
	PublicURL           string
	Currency            string
	GoogleClientID      string
	AssetBucket         string
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	MailFrom            string
	DBTimeout           time.Duration
	GatewayTimeout      time.Duration
	ProviderTimeout     time.Duration
	ShutdownTimeout     time.Duration
	NotifyWorkers       int
	LogLevel            string
	PublicRateLimit     int
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultJWTTTL          = 24 * time.Hour
	defaultPublicURL       = "http://localhost:8080"
	defaultCurrency        = "mxn"
	defaultSMTPPort        = 587
	defaultDBTimeout       = 5 * time.Second
	defaultGatewayTimeout  = 10 * time.Second
	defaultProviderTimeout = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultNotifyWorkers   = 2
	defaultLogLevel        = "info"
	defaultPublicRateLimit = 20
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		JWTSecret:           getString(lookup, "JWT_SECRET", defaultJWTSecret),
		JWTTTL:              getDuration(lookup, "JWT_TTL", defaultJWTTTL),
		StripeSecretKey:     getString(lookup, "STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getString(lookup, "STRIPE_WEBHOOK_SECRET", ""),
		PublicURL:           getString(lookup, "PUBLIC_URL", defaultPublicURL),
		Currency:            getString(lookup, "CURRENCY", defaultCurrency),
		GoogleClientID:      getString(lookup, "GOOGLE_CLIENT_ID", ""),
		AssetBucket:         getString(lookup, "ASSET_BUCKET", ""),
		SMTPHost:            getString(lookup, "SMTP_HOST", ""),
		SMTPPort:            getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPUsername:        getString(lookup, "SMTP_USERNAME", ""),
		SMTPPassword:        getString(lookup, "SMTP_PASSWORD", ""),
		MailFrom:            getString(lookup, "MAIL_FROM", ""),
		DBTimeout:           getDuration(lookup, "DB_TIMEOUT", defaultDBTimeout),
		GatewayTimeout:      getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		ProviderTimeout:     getDuration(lookup, "PROVIDER_TIMEOUT", defaultProviderTimeout),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		NotifyWorkers:       getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		LogLevel:            getString(lookup, "LOG_LEVEL", defaultLogLevel),
		PublicRateLimit:     getInt(lookup, "PUBLIC_RATE_LIMIT", defaultPublicRateLimit),
	}

	fs := flag.NewFlagSet("orderdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		jwtTTLStr          = cfg.JWTTTL.String()
		dbTimeoutStr       = cfg.DBTimeout.String()
		gatewayTimeoutStr  = cfg.GatewayTimeout.String()
		providerTimeoutStr = cfg.ProviderTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&jwtTTLStr, "jwt-ttl", jwtTTLStr, "Lifetime of issued auth tokens")
	fs.StringVar(&cfg.StripeSecretKey, "stripe-key", cfg.StripeSecretKey, "Stripe API secret key")
	fs.StringVar(&cfg.StripeWebhookSecret, "stripe-webhook-secret", cfg.StripeWebhookSecret, "Stripe webhook signing secret")
	fs.StringVar(&cfg.PublicURL, "public-url", cfg.PublicURL, "Public base URL used for checkout redirects")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "Checkout currency code")
	fs.StringVar(&cfg.GoogleClientID, "google-client-id", cfg.GoogleClientID, "Google OAuth client id")
	fs.StringVar(&cfg.AssetBucket, "asset-bucket", cfg.AssetBucket, "Cloud Storage bucket for uploaded images")
	fs.StringVar(&cfg.SMTPHost, "smtp-host", cfg.SMTPHost, "SMTP relay host")
	fs.IntVar(&cfg.SMTPPort, "smtp-port", cfg.SMTPPort, "SMTP relay port")
	fs.StringVar(&cfg.SMTPUsername, "smtp-username", cfg.SMTPUsername, "SMTP username")
	fs.StringVar(&cfg.SMTPPassword, "smtp-password", cfg.SMTPPassword, "SMTP password")
	fs.StringVar(&cfg.MailFrom, "mail-from", cfg.MailFrom, "Sender address of notification e-mails")
	fs.StringVar(&dbTimeoutStr, "db-timeout", dbTimeoutStr, "Timeout of a single store call")
	fs.StringVar(&gatewayTimeoutStr, "gateway-timeout", gatewayTimeoutStr, "Timeout of payment gateway calls")
	fs.StringVar(&providerTimeoutStr, "provider-timeout", providerTimeoutStr, "Timeout of asset, identity and mail providers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of concurrent notification workers")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.IntVar(&cfg.PublicRateLimit, "public-rate-limit", cfg.PublicRateLimit, "Requests per second allowed on public routes, 0 disables")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.JWTTTL, err = time.ParseDuration(jwtTTLStr); err != nil {
		return nil, fmt.Errorf("invalid jwt ttl: %w", err)
	}
	if cfg.DBTimeout, err = time.ParseDuration(dbTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid db timeout: %w", err)
	}
	if cfg.GatewayTimeout, err = time.ParseDuration(gatewayTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}
	if cfg.ProviderTimeout, err = time.ParseDuration(providerTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid provider timeout: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = defaultJWTTTL
	}
	if cfg.DBTimeout <= 0 {
		cfg.DBTimeout = defaultDBTimeout
	}
	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = defaultProviderTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}
	if cfg.PublicRateLimit < 0 {
		cfg.PublicRateLimit = 0
	}

	cfg.Currency = strings.ToLower(cfg.Currency)
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe secret key must be provided")
	}
	if cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("stripe webhook secret must be provided")
	}

	return cfg, nil
}

// Checkout outcomes appended to PublicURL for the payment gateway redirects.
const (
	CheckoutSuccess = "success"
	CheckoutCancel  = "cancel"
)

// CheckoutSuccessURL is where the payment gateway redirects after payment.
func (c *Config) CheckoutSuccessURL() string {
	return c.PublicURL + "/checkout/" + CheckoutSuccess
}

// CheckoutCancelURL is where the payment gateway redirects on abandon.
func (c *Config) CheckoutCancelURL() string {
	return c.PublicURL + "/checkout/" + CheckoutCancel
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
