package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Email     EmailConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	HubSpot   HubSpotConfig
	Loops     LoopsConfig
	Sync      SyncConfig
	App       AppConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host         string
	Port         string
	TimeoutRead  time.Duration
	TimeoutWrite time.Duration
	TimeoutIdle  time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// JWTConfig holds JWT-related configuration for admin sessions
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// AdminConfig holds the admin account used by the moderation panel
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt hash, generated out of band
}

// EmailConfig holds SMTP configuration for transactional mail
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// RateLimitConfig holds vote rate limiting configuration.
// Voting is capped per client both per minute and per day.
type RateLimitConfig struct {
	Enabled        bool
	VotesPerMinute int
	VotesPerDay    int
	GlobalRequests int
	GlobalDuration time.Duration
}

// HubSpotConfig holds the CRM sync configuration
type HubSpotConfig struct {
	Enabled bool
	Token   string
	BaseURL string
}

// LoopsConfig holds the marketing-tool sync configuration
type LoopsConfig struct {
	Enabled bool
	APIKey  string
	BaseURL string
}

// SyncConfig holds outbox worker configuration
type SyncConfig struct {
	CronSecret   string // shared secret for the HTTP-triggered drain
	BatchSize    int
	MaxAttempts  int // attempts before an entry is marked dead
	Interval     time.Duration
	EnableWorker bool // in-process periodic drain
}

// AppConfig holds general application configuration
type AppConfig struct {
	Env     string
	Name    string
	Version string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found).
	// godotenv doesn't override already-set variables, so order matters.
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnv("SERVER_PORT", "8080"),
			TimeoutRead:  getDurationEnv("SERVER_TIMEOUT_READ", 15*time.Second),
			TimeoutWrite: getDurationEnv("SERVER_TIMEOUT_WRITE", 15*time.Second),
			TimeoutIdle:  getDurationEnv("SERVER_TIMEOUT_IDLE", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "awards"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "awards_db"),
			SSLMode:         getEnv("DB_SSLMODE", "prefer"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			Expiration: getDurationEnv("JWT_EXPIRATION", 24*time.Hour),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			AllowedMethods:   getSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getSliceEnv("CORS_ALLOWED_HEADERS", []string{"Accept", "Authorization", "Content-Type"}),
			ExposedHeaders:   getSliceEnv("CORS_EXPOSED_HEADERS", []string{"Link"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getIntEnv("CORS_MAX_AGE", 300),
		},
		RateLimit: RateLimitConfig{
			Enabled:        getBoolEnv("RATE_LIMIT_ENABLED", true),
			VotesPerMinute: getIntEnv("RATE_LIMIT_VOTES_PER_MINUTE", 5),
			VotesPerDay:    getIntEnv("RATE_LIMIT_VOTES_PER_DAY", 50),
			GlobalRequests: getIntEnv("RATE_LIMIT_REQUESTS", 100),
			GlobalDuration: getDurationEnv("RATE_LIMIT_DURATION", 1*time.Minute),
		},
		HubSpot: HubSpotConfig{
			Enabled: getBoolEnv("HUBSPOT_SYNC_ENABLED", false),
			Token:   getEnv("HUBSPOT_TOKEN", ""),
			BaseURL: getEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com"),
		},
		Loops: LoopsConfig{
			Enabled: getBoolEnv("LOOPS_SYNC_ENABLED", false),
			APIKey:  getEnv("LOOPS_API_KEY", ""),
			BaseURL: getEnv("LOOPS_BASE_URL", "https://app.loops.so/api/v1"),
		},
		Sync: SyncConfig{
			CronSecret:   getEnv("CRON_SECRET", ""),
			BatchSize:    getIntEnv("SYNC_BATCH_SIZE", 25),
			MaxAttempts:  getIntEnv("SYNC_MAX_ATTEMPTS", 8),
			Interval:     getDurationEnv("SYNC_INTERVAL", 5*time.Minute),
			EnableWorker: getBoolEnv("SYNC_ENABLE_WORKER", true),
		},
		App: AppConfig{
			Env:     getEnv("APP_ENV", "development"),
			Name:    getEnv("APP_NAME", "Awards"),
			Version: getEnv("APP_VERSION", "1.0.0"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Admin.Email == "" || c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required")
	}
	if c.Database.Password == "" && c.App.Env == "production" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}
	if c.HubSpot.Enabled && c.HubSpot.Token == "" {
		return fmt.Errorf("HUBSPOT_TOKEN is required when HUBSPOT_SYNC_ENABLED is true")
	}
	if c.Loops.Enabled && c.Loops.APIKey == "" {
		return fmt.Errorf("LOOPS_API_KEY is required when LOOPS_SYNC_ENABLED is true")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		// Split by comma and trim whitespace
		parts := strings.Split(value, ",")
		var result []string
		for _, v := range parts {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
