package config

import (
	"os"
	"time"
)

// OAuthCredentials holds the client credentials for one platform
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
}

// Config holds application configuration
type Config struct {
	ServerPort      string
	Environment     string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	MigrationsPath  string
	TemplatesPath   string
	StaticFilesPath string

	// Signing secret for session tokens
	AuthSecret      string
	SessionDuration time.Duration

	// Base URL used to build OAuth redirect URIs
	AppBaseURL string

	XCredentials         OAuthCredentials
	InstagramCredentials OAuthCredentials
	LinkedInCredentials  OAuthCredentials
	FacebookCredentials  OAuthCredentials

	// Email (Amazon SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		Environment:     getEnv("APP_ENV", "development"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./postflow.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./internal/templates"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),

		AuthSecret:      getEnv("AUTH_SECRET", "fallback-secret"),
		SessionDuration: 30 * 24 * time.Hour,

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:8080"),

		XCredentials: OAuthCredentials{
			ClientID:     os.Getenv("TWITTER_CLIENT_ID"),
			ClientSecret: os.Getenv("TWITTER_CLIENT_SECRET"),
		},
		InstagramCredentials: OAuthCredentials{
			ClientID:     os.Getenv("INSTAGRAM_CLIENT_ID"),
			ClientSecret: os.Getenv("INSTAGRAM_CLIENT_SECRET"),
		},
		LinkedInCredentials: OAuthCredentials{
			ClientID:     os.Getenv("LINKEDIN_CLIENT_ID"),
			ClientSecret: os.Getenv("LINKEDIN_CLIENT_SECRET"),
		},
		FacebookCredentials: OAuthCredentials{
			ClientID:     os.Getenv("FACEBOOK_CLIENT_ID"),
			ClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
		},

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: os.Getenv("SES_FROM_EMAIL"),
		SESFromName:  getEnv("SES_FROM_NAME", "Postflow"),
	}
}

// IsProduction reports whether the app is running in production.
// The Secure attribute on cookies follows this flag.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
