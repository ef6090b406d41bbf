package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	DBConnString    string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	SessionSecret   string
	AdminToken      string
	SecureCookie    bool

	CartBackend string
	RedisAddr   string
	CartTTL     time.Duration
	CheckoutTTL time.Duration

	OrderStore        string
	FirestoreProject  string
	FirestoreCredFile string
	MongoURI          string
	MongoDB           string

	PayPalClientID string
	PayPalSecret   string
	PayPalMode     string

	MailProvider   string
	MailFrom       string
	SendGridAPIKey string
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string

	NotifyMode      string
	ConfirmationURL string
	KafkaBrokers    []string
	KafkaTopic      string
	KafkaGroupID    string
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DBConnString:    envOrDefault("DB_DSN", ""),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		CORSOrigins:     envList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		SessionSecret:   envOrDefault("SESSION_SECRET", "dev-session-secret"),
		AdminToken:      envOrDefault("ADMIN_TOKEN", ""),
		SecureCookie:    envOrDefault("COOKIE_SECURE", "false") == "true",

		CartBackend: envOrDefault("CART_BACKEND", "memory"),
		RedisAddr:   envOrDefault("REDIS_ADDR", "localhost:6379"),
		CartTTL:     envDuration("CART_TTL_SECONDS", 30*24*time.Hour),
		CheckoutTTL: envDuration("CHECKOUT_TTL_SECONDS", 3*time.Hour),

		OrderStore:        envOrDefault("ORDER_STORE", "firestore"),
		FirestoreProject:  envOrDefault("FIRESTORE_PROJECT_ID", ""),
		FirestoreCredFile: envOrDefault("GOOGLE_APPLICATION_CREDENTIALS", ""),
		MongoURI:          envOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           envOrDefault("MONGO_DB", "fundraiser"),

		PayPalClientID: envOrDefault("PAYPAL_CLIENT_ID", ""),
		PayPalSecret:   envOrDefault("PAYPAL_SECRET", ""),
		PayPalMode:     envOrDefault("PAYPAL_MODE", "sandbox"),

		MailProvider:   envOrDefault("MAIL_PROVIDER", "sendgrid"),
		MailFrom:       envOrDefault("MAIL_FROM", "DCDC Fundraiser Store <orders@potomacimprints.com>"),
		SendGridAPIKey: envOrDefault("SENDGRID_API_KEY", ""),
		SMTPHost:       envOrDefault("SMTP_HOST", "localhost"),
		SMTPPort:       envOrDefault("SMTP_PORT", "1025"),
		SMTPUser:       envOrDefault("SMTP_USER", ""),
		SMTPPassword:   envOrDefault("SMTP_PASSWORD", ""),

		NotifyMode:      envOrDefault("NOTIFY_MODE", "http"),
		ConfirmationURL: envOrDefault("CONFIRMATION_URL", "http://localhost:8080/api/send-order-confirmation"),
		KafkaBrokers:    envList("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaTopic:      envOrDefault("KAFKA_TOPIC", "order-placed"),
		KafkaGroupID:    envOrDefault("KAFKA_GROUP_ID", "order-notifier"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
