package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port        string
	PublicURL   string
	FrontendDir string
	Database    DatabaseConfig
	Uploads     UploadConfig
	Notify      NotifyConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// UploadConfig holds photo upload configuration
type UploadConfig struct {
	Dir         string
	MaxFileSize int64
	MaxFiles    int
}

// NotifyConfig holds outbound notification configuration
type NotifyConfig struct {
	CountryCode string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "5000"),
		PublicURL:   getEnv("PUBLIC_URL", "http://localhost:5000"),
		FrontendDir: getEnv("FRONTEND_DIR", "frontend/build"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "laundromat"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
		Uploads: UploadConfig{
			Dir:         getEnv("UPLOAD_DIR", "uploads"),
			MaxFileSize: 10 * 1024 * 1024, // 10MB per photo
			MaxFiles:    10,
		},
		Notify: NotifyConfig{
			CountryCode: getEnv("COUNTRY_CODE", "27"),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
