package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string // sqlite (default), postgres, mysql
	DatabasePath    string // sqlite file path
	DatabaseURL     string // postgres/mysql connection string
	MigrationsPath  string
	StaticFilesPath string

	SessionDuration time.Duration
	UploadMaxSize   int64

	// Parental override gate
	ParentPasscode string // hashed at startup, compared on unlock attempts
	UnlockTokenKey string // HS256 key for settings-access tokens
	UnlockTokenTTL time.Duration
	AlertDuration  time.Duration // how long the "come here" alert stays up

	// Session report email (Amazon SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	// Parent OAuth sign-in
	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectBase  string

	// AI providers (chat assistant, dictation)
	OpenAIAPIKey string
	GeminiAPIKey string
}

// Load reads configuration from the environment (and an optional .env
// file) with sensible defaults for local development.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./screenclash.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),

		SessionDuration: getEnvDuration("SESSION_DURATION", 24*time.Hour),
		UploadMaxSize:   getEnvInt64("UPLOAD_MAX_SIZE", 10*1024*1024), // reading recordings

		ParentPasscode: getEnv("PARENT_PASSCODE", ""),
		UnlockTokenKey: getEnv("UNLOCK_TOKEN_KEY", ""),
		UnlockTokenTTL: getEnvDuration("UNLOCK_TOKEN_TTL", 15*time.Minute),
		AlertDuration:  getEnvDuration("ALERT_DURATION", 5*time.Second),

		AWSRegion:    getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "ScreenClash"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBase:  getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration for %s, using default", key)
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		log.Printf("Warning: invalid integer for %s, using default", key)
	}
	return defaultValue
}
