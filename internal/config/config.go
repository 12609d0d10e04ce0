// Package config assembles the service configuration from the environment.
// A .env file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"strings"
	"time"

	"rp_admin_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// DefaultGatewayAPIKey is the development key the gateway ships with.
// It is not a secret and must be overridden outside local setups.
const DefaultGatewayAPIKey = "rp-gateway-2026-secure-key"

// DefaultJWTSecret is only good for local development.
const DefaultJWTSecret = "rp-admin-dev-secret-change-me"

type Config struct {
	Port        string
	LogLevel    string
	LogFormat   string
	CORSOrigins []string

	DB       DBConfig
	Gateway  GatewayConfig
	Auth     AuthConfig
	Sales    SalesConfig
	OCR      OCRConfig
	Receipts ReceiptStorageConfig
	Cache    CacheConfig
}

type DBConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SchemaPath string
}

// DSN renders a lib/pq key=value connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type GatewayConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// UsesDefaultKey reports whether the insecure built-in key is in effect.
func (g GatewayConfig) UsesDefaultKey() bool {
	return g.APIKey == DefaultGatewayAPIKey
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
}

type SalesConfig struct {
	BillPrefix string
}

type OCRConfig struct {
	Language string
}

type ReceiptStorageConfig struct {
	Backend         string // "", "local" or "gcs"
	Dir             string
	PublicPath      string
	Bucket          string
	CredentialsFile string
}

type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// Enabled reports whether a Redis address was configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// Load reads .env (if any) and the process environment.
func Load() *Config {
	// A missing .env is the normal case in containers.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        utils.Getenv("PORT", "8080"),
		LogLevel:    utils.Getenv("LOG_LEVEL", "info"),
		LogFormat:   utils.Getenv("LOG_FORMAT", "console"),
		CORSOrigins: splitList(utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		DB: DBConfig{
			Host:       utils.Getenv("DB_HOST", "localhost"),
			Port:       utils.Getenv("DB_PORT", "5432"),
			User:       utils.Getenv("DB_USER", "rp_admin"),
			Password:   utils.Getenv("DB_PASSWORD", "rp_admin_password"),
			Name:       utils.Getenv("DB_NAME", "rp_admin_db"),
			SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		},
		Gateway: GatewayConfig{
			BaseURL: strings.TrimRight(utils.Getenv("GATEWAY_URL", "http://localhost:3100"), "/"),
			APIKey:  utils.Getenv("GATEWAY_API_KEY", DefaultGatewayAPIKey),
			Timeout: utils.GetenvDuration("GATEWAY_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:     utils.Getenv("JWT_SECRET", DefaultJWTSecret),
			TokenTTL:      utils.GetenvDuration("JWT_TTL", 12*time.Hour),
			AdminUsername: utils.Getenv("ADMIN_USERNAME", "admin"),
			AdminPassword: utils.Getenv("ADMIN_PASSWORD", ""),
		},
		Sales: SalesConfig{
			BillPrefix: utils.Getenv("BILL_PREFIX", "RP-BILL"),
		},
		OCR: OCRConfig{
			Language: utils.Getenv("OCR_LANGUAGE", "eng"),
		},
		Receipts: ReceiptStorageConfig{
			Backend:         strings.ToLower(utils.Getenv("RECEIPT_STORAGE", "")),
			Dir:             utils.Getenv("RECEIPT_DIR", "data/receipts"),
			PublicPath:      utils.Getenv("RECEIPT_PUBLIC_PATH", "/receipts"),
			Bucket:          utils.Getenv("GCS_BUCKET", ""),
			CredentialsFile: utils.Getenv("GCS_CREDENTIALS_FILE", ""),
		},
		Cache: CacheConfig{
			RedisAddr:     utils.Getenv("REDIS_ADDR", ""),
			RedisPassword: utils.Getenv("REDIS_PASSWORD", ""),
			RedisDB:       utils.GetenvInt("REDIS_DB", 0),
			TTL:           utils.GetenvDuration("CACHE_TTL", 30*time.Second),
		},
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
