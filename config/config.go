package config

import "os"

// Config holds every secret and provider key the service needs. It is read
// once at boot and handed to each component's constructor; nothing reads the
// environment after startup.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string

	TMDBAPIKey string

	GoogleClientID     string
	GoogleClientSecret string

	StripeAPIKey        string
	StripeWebhookSecret string

	SendGridAPIKey string
	ReceiptFrom    string

	SlackWebhookURL string
}

func Load() Config {
	return Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		TMDBAPIKey:          os.Getenv("TMDB_API_KEY"),
		GoogleClientID:      os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:  os.Getenv("GOOGLE_CLIENT_SECRET"),
		StripeAPIKey:        os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		SendGridAPIKey:      os.Getenv("SENDGRID_API_KEY"),
		ReceiptFrom:         getEnv("RECEIPT_FROM_EMAIL", "billing@popflix.app"),
		SlackWebhookURL:     os.Getenv("SLACK_WEBHOOK_URL"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
