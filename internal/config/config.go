package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	CORS         CORSConfig
	RateLimit    RateLimitConfig
	Receipt      ReceiptConfig
	Printer      PrinterConfig
	Subscription SubscriptionConfig
	Admin        AdminConfig
}

type AppConfig struct {
	Name       string
	Env        string
	Port       string
	Debug      bool
	BaseDomain string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// ReceiptConfig holds receipt engine defaults
type ReceiptConfig struct {
	Currency          string
	DefaultSize       string
	SignatureLabel    string
	SessionTTL        time.Duration
	LookupConcurrency int
	BalanceOnError    string // zero | unknown
	PreviewWidthPx    float64
	PreviewHeightPx   float64
}

// PrinterConfig selects the thermal printer transport
type PrinterConfig struct {
	Type      string // none | usb | network
	USBPath   string
	Address   string
	CharWidth int
}

type SubscriptionConfig struct {
	TrialDays int
}

// AdminConfig seeds the platform super admin on first start
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:       viper.GetString("APP_NAME"),
			Env:        viper.GetString("APP_ENV"),
			Port:       viper.GetString("APP_PORT"),
			Debug:      viper.GetBool("APP_DEBUG"),
			BaseDomain: viper.GetString("APP_BASE_DOMAIN"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(viper.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(viper.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Receipt: ReceiptConfig{
			Currency:          viper.GetString("RECEIPT_CURRENCY"),
			DefaultSize:       strings.ToUpper(viper.GetString("RECEIPT_DEFAULT_SIZE")),
			SignatureLabel:    viper.GetString("RECEIPT_SIGNATURE_LABEL"),
			SessionTTL:        time.Duration(viper.GetInt("RECEIPT_SESSION_TTL_MINUTES")) * time.Minute,
			LookupConcurrency: viper.GetInt("RECEIPT_LOOKUP_CONCURRENCY"),
			BalanceOnError:    strings.ToLower(viper.GetString("RECEIPT_BALANCE_ON_ERROR")),
			PreviewWidthPx:    viper.GetFloat64("RECEIPT_PREVIEW_WIDTH_PX"),
			PreviewHeightPx:   viper.GetFloat64("RECEIPT_PREVIEW_HEIGHT_PX"),
		},
		Printer: PrinterConfig{
			Type:      strings.ToLower(viper.GetString("PRINTER_TYPE")),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
		Subscription: SubscriptionConfig{
			TrialDays: viper.GetInt("SUBSCRIPTION_TRIAL_DAYS"),
		},
		Admin: AdminConfig{
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
			Name:     viper.GetString("ADMIN_NAME"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "shulefees-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_BASE_DOMAIN", "localhost")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "shulefees")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Africa/Nairobi")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	viper.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Authorization,X-Tenant,Idempotency-Key")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("RECEIPT_CURRENCY", "KES")
	viper.SetDefault("RECEIPT_DEFAULT_SIZE", "A5")
	viper.SetDefault("RECEIPT_SIGNATURE_LABEL", "Authorized Signature")
	viper.SetDefault("RECEIPT_SESSION_TTL_MINUTES", 30)
	viper.SetDefault("RECEIPT_LOOKUP_CONCURRENCY", 8)
	viper.SetDefault("RECEIPT_BALANCE_ON_ERROR", "unknown")
	viper.SetDefault("RECEIPT_PREVIEW_WIDTH_PX", 320)
	viper.SetDefault("RECEIPT_PREVIEW_HEIGHT_PX", 450)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 48)
	viper.SetDefault("SUBSCRIPTION_TRIAL_DAYS", 14)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
