package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Sheets     SheetsConfig
	CredStore  CredStoreConfig
	GitHubSync GitHubSyncConfig
	JWT        JWTConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
	Cache      CacheConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// SheetsConfig points the ledger gateway at the backing spreadsheet.
// CredentialsJSON holds the service-account key; when empty, application
// default credentials are used.
type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
}

// CredStoreConfig locates the YAML credential file.
type CredStoreConfig struct {
	Path string
}

// GitHubSyncConfig drives the remote persistence of the credential file.
// Sync is disabled when Token is empty.
type GitHubSyncConfig struct {
	Token    string
	Repo     string
	FilePath string
	Branch   string
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

// CacheConfig controls the ledger snapshot cache.
type CacheConfig struct {
	SnapshotTTL time.Duration
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "invoicing-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("SHEETS_SPREADSHEET_ID", "")
	viper.SetDefault("SHEETS_SHEET_NAME", "invoices_records")
	viper.SetDefault("SHEETS_CREDENTIALS_JSON", "")
	viper.SetDefault("CREDSTORE_PATH", "config.yaml")
	viper.SetDefault("GITHUB_TOKEN", "")
	viper.SetDefault("GITHUB_REPO", "")
	viper.SetDefault("GITHUB_FILE_PATH", "config.yaml")
	viper.SetDefault("GITHUB_BRANCH", "main")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("SNAPSHOT_TTL_MINUTES", 5)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   viper.GetString("SHEETS_SPREADSHEET_ID"),
			SheetName:       viper.GetString("SHEETS_SHEET_NAME"),
			CredentialsJSON: viper.GetString("SHEETS_CREDENTIALS_JSON"),
		},
		CredStore: CredStoreConfig{
			Path: viper.GetString("CREDSTORE_PATH"),
		},
		GitHubSync: GitHubSyncConfig{
			Token:    viper.GetString("GITHUB_TOKEN"),
			Repo:     viper.GetString("GITHUB_REPO"),
			FilePath: viper.GetString("GITHUB_FILE_PATH"),
			Branch:   viper.GetString("GITHUB_BRANCH"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Cache: CacheConfig{
			SnapshotTTL: time.Duration(viper.GetInt("SNAPSHOT_TTL_MINUTES")) * time.Minute,
		},
	}
}
