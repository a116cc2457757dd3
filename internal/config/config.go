// internal/config/config.go
// Centralized configuration management
// Loads from environment variables with sensible defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	BaseURL     string

	// Storage
	MongoURI      string
	MongoDatabase string
	RedisURL      string

	// Security
	JWTSecret          string
	BCryptCost         int
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	// Password reset
	PasswordResetExpiry time.Duration

	// Email: "sendgrid", "smtp" or "mock"
	EmailProvider  string
	EmailFrom      string
	SendGridAPIKey string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string

	// SMS: "twilio" or "mock"
	SMSProvider       string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	// Uploads
	UseS3          bool
	S3Bucket       string
	S3Region       string
	LocalUploadDir string

	// Notification channels
	EnableEmailNotifications bool
	EnableSMSNotifications   bool
}

// Load reads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", ""),

		MongoURI:      getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "prempath"),
		RedisURL:      getEnv("REDIS_URL", ""),

		JWTSecret:          getEnv("JWT_SECRET", "change-this-in-production"),
		BCryptCost:         getEnvInt("BCRYPT_COST", 10),
		AccessTokenExpiry:  getEnvDuration("ACCESS_TOKEN_EXPIRY", "24h"),
		RefreshTokenExpiry: getEnvDuration("REFRESH_TOKEN_EXPIRY", "720h"),

		PasswordResetExpiry: getEnvDuration("PASSWORD_RESET_EXPIRY", "30m"),

		EmailProvider:  getEnv("EMAIL_PROVIDER", "mock"),
		EmailFrom:      getEnv("EMAIL_FROM", "noreply@prempath.com"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),

		SMSProvider:       getEnv("SMS_PROVIDER", "mock"),
		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),

		UseS3:          getEnvBool("USE_S3", false),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		LocalUploadDir: getEnv("LOCAL_UPLOAD_DIR", "./uploads"),

		EnableEmailNotifications: getEnvBool("ENABLE_EMAIL_NOTIFICATIONS", true),
		EnableSMSNotifications:   getEnvBool("ENABLE_SMS_NOTIFICATIONS", false),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.Port)
	}

	return cfg
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.JWTSecret == "" || (c.IsProduction() && c.JWTSecret == "change-this-in-production") {
		return fmt.Errorf("JWT_SECRET must be set to a real secret")
	}
	if c.EmailProvider == "sendgrid" && c.SendGridAPIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is required when EMAIL_PROVIDER=sendgrid")
	}
	if c.SMSProvider == "twilio" && (c.TwilioAccountSID == "" || c.TwilioAuthToken == "" || c.TwilioPhoneNumber == "") {
		return fmt.Errorf("incomplete Twilio configuration")
	}
	if c.UseS3 && c.S3Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required when USE_S3=true")
	}
	return nil
}

// IsProduction returns true in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	d, err := time.ParseDuration(value)
	if err != nil {
		d, _ = time.ParseDuration(defaultValue)
	}
	return d
}
