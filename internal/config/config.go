package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	IssuePolicyOpen         = "open"
	IssuePolicyRegistered   = "registered"
	IssuePolicyClientSecret = "client_secret"
)

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration
	StoreTimeout            time.Duration
	LogLevel                string

	MongoURI      string
	MongoDatabase string

	// DatabaseURL is optional; the audit trail is disabled without it.
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	AccessTokenSecret     string
	AccessTokenTTL        time.Duration
	TokenIssuePolicy      string
	TokenClientSecretHash string

	StripeSecretKey string
	PaymentCurrency string

	CORSOrigins      []string
	RateLimitRPM     int
	AuthRateLimitRPM int

	PageDefaultSize int64
	PageMaxSize     int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", getEnv("PORT", "5000")),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 30*time.Second),
		StoreTimeout:            getDuration("STORE_TIMEOUT", 5*time.Second),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		MongoURI:                strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDatabase:           getEnv("MONGO_DATABASE", "forumDb"),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 1)),
		AccessTokenSecret:       strings.TrimSpace(os.Getenv("ACCESS_TOKEN_SECRET")),
		AccessTokenTTL:          getDuration("ACCESS_TOKEN_TTL", time.Hour),
		TokenIssuePolicy:        strings.ToLower(getEnv("TOKEN_ISSUE_POLICY", IssuePolicyRegistered)),
		TokenClientSecretHash:   strings.TrimSpace(os.Getenv("TOKEN_CLIENT_SECRET_HASH")),
		StripeSecretKey:         strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		PaymentCurrency:         strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM:            getInt("RATE_LIMIT_RPM", 300),
		AuthRateLimitRPM:        getInt("AUTH_RATE_LIMIT_RPM", 20),
		PageDefaultSize:         getInt64("PAGE_DEFAULT_SIZE", 10),
		PageMaxSize:             getInt64("PAGE_MAX_SIZE", 100),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.AccessTokenSecret) == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if strings.TrimSpace(c.MongoURI) == "" {
		return fmt.Errorf("MONGO_URI is required")
	}

	if strings.TrimSpace(c.MongoDatabase) == "" {
		return fmt.Errorf("MONGO_DATABASE cannot be empty")
	}

	if strings.TrimSpace(c.StripeSecretKey) == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}

	switch c.TokenIssuePolicy {
	case IssuePolicyOpen, IssuePolicyRegistered:
	case IssuePolicyClientSecret:
		if c.TokenClientSecretHash == "" {
			return fmt.Errorf("TOKEN_CLIENT_SECRET_HASH is required when TOKEN_ISSUE_POLICY=%s", IssuePolicyClientSecret)
		}
	default:
		return fmt.Errorf("TOKEN_ISSUE_POLICY must be one of %s, %s, %s", IssuePolicyOpen, IssuePolicyRegistered, IssuePolicyClientSecret)
	}

	if c.PageDefaultSize <= 0 {
		return fmt.Errorf("PAGE_DEFAULT_SIZE must be positive")
	}

	if c.PageMaxSize < c.PageDefaultSize {
		return fmt.Errorf("PAGE_MAX_SIZE must be at least PAGE_DEFAULT_SIZE")
	}

	if c.DatabaseURL != "" && c.DBMaxConns < c.DBMinConns {
		return fmt.Errorf("DB_MAX_CONNS must be at least DB_MIN_CONNS")
	}

	return nil
}

// AuditEnabled reports whether a PostgreSQL audit store is configured.
func (c *Config) AuditEnabled() bool {
	return c.DatabaseURL != ""
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
