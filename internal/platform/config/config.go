package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Storage
	DBDriver      string // "pgsql" or "sqlite"
	DatabaseURL   string
	SQLitePath    string
	MigrationsDir string

	// Auth
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AuthUsername      string
	AuthPasswordHash  string

	// Exchange rates
	RatesAPIURL  string
	RatesTimeout time.Duration

	// AI analysis
	GeminiAPIKey      string
	GeminiModel       string
	AnalysisRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_PATH", "devis.db")
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "devis-manager-app")
	viper.SetDefault("AUTH_USERNAME", "admin")
	viper.SetDefault("AUTH_PASSWORD_HASH", "")
	viper.SetDefault("RATES_API_URL", "https://api.frankfurter.app")
	viper.SetDefault("RATES_TIMEOUT", "10s")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("ANALYSIS_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.DBDriver = viper.GetString("DB_DRIVER")
	if cfg.DBDriver != "pgsql" && cfg.DBDriver != "sqlite" {
		log.Printf("Warning: Unknown DB_DRIVER ('%s'). Defaulting to sqlite.\n", cfg.DBDriver)
		cfg.DBDriver = "sqlite"
	}
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DBDriver == "pgsql" && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.SQLitePath = viper.GetString("SQLITE_PATH")
	cfg.MigrationsDir = viper.GetString("MIGRATIONS_DIR")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 12
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AuthUsername = viper.GetString("AUTH_USERNAME")
	cfg.AuthPasswordHash = viper.GetString("AUTH_PASSWORD_HASH")
	if cfg.AuthPasswordHash == "" {
		log.Println("Warning: AUTH_PASSWORD_HASH not set. Login will be rejected for all credentials.")
	}

	cfg.RatesAPIURL = viper.GetString("RATES_API_URL")
	ratesTimeoutStr := viper.GetString("RATES_TIMEOUT")
	ratesTimeout, err := time.ParseDuration(ratesTimeoutStr)
	if err != nil {
		ratesTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for RATES_TIMEOUT ('%s'). Defaulting to %s.\n", ratesTimeoutStr, ratesTimeout.String())
	}
	cfg.RatesTimeout = ratesTimeout

	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Quote analysis will use the degraded fallback.")
	}
	cfg.GeminiModel = viper.GetString("GEMINI_MODEL")
	cfg.AnalysisRateLimit = viper.GetString("ANALYSIS_RATE_LIMIT")

	return cfg, nil
}
