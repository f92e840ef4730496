package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Exact Online OAuth application
	ExactClientID     string `mapstructure:"EXACT_CLIENT_ID"`
	ExactClientSecret string `mapstructure:"EXACT_CLIENT_SECRET"`
	ExactRedirectURL  string `mapstructure:"EXACT_REDIRECT_URL"`
	ExactBaseURL      string `mapstructure:"EXACT_BASE_URL"`
	ExactStateTTL     time.Duration

	// Empty RedisURL disables distributed locking.
	RedisURL     string `mapstructure:"REDIS_URL"`
	TokenLockTTL time.Duration
	// SyncLockTTL must outlast the longest Exact Online sync.
	SyncLockTTL time.Duration

	FrontendBaseURL    string   `mapstructure:"FRONTEND_BASE_URL"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	ImportBatchSize    int      `mapstructure:"IMPORT_BATCH_SIZE"`

	// Empty PosthogAPIKey disables analytics.
	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`
	PosthogEndpoint string `mapstructure:"POSTHOG_ENDPOINT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "flowqi-backend")
	viper.SetDefault("EXACT_CLIENT_ID", "")
	viper.SetDefault("EXACT_CLIENT_SECRET", "")
	viper.SetDefault("EXACT_REDIRECT_URL", "")
	viper.SetDefault("EXACT_BASE_URL", "https://start.exactonline.nl")
	viper.SetDefault("EXACT_STATE_TTL", "10m")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("TOKEN_LOCK_TTL", "30s")
	viper.SetDefault("SYNC_LOCK_TTL", "15m")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("IMPORT_BATCH_SIZE", 50)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.ExactStateTTL = durationOrDefault("EXACT_STATE_TTL", 10*time.Minute)
	cfg.TokenLockTTL = durationOrDefault("TOKEN_LOCK_TTL", 30*time.Second)
	cfg.SyncLockTTL = durationOrDefault("SYNC_LOCK_TTL", 15*time.Minute)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "flowqi-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.ExactClientID = viper.GetString("EXACT_CLIENT_ID")
	cfg.ExactClientSecret = viper.GetString("EXACT_CLIENT_SECRET")
	cfg.ExactRedirectURL = viper.GetString("EXACT_REDIRECT_URL")
	cfg.ExactBaseURL = strings.TrimRight(viper.GetString("EXACT_BASE_URL"), "/")

	if cfg.ExactClientID == "" || cfg.ExactClientSecret == "" {
		log.Println("Warning: EXACT_CLIENT_ID or EXACT_CLIENT_SECRET not set. Exact Online integration will not function.")
	}
	if cfg.ExactRedirectURL == "" {
		log.Println("Warning: EXACT_REDIRECT_URL not set. Exact Online authorization will not function.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Token refresh locking is process-local only.")
	}

	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.CORSAllowedOrigins = splitOrigins(viper.GetString("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORSAllowedOrigins) == 0 && cfg.FrontendBaseURL != "" {
		cfg.CORSAllowedOrigins = []string{cfg.FrontendBaseURL}
	}

	cfg.ImportBatchSize = viper.GetInt("IMPORT_BATCH_SIZE")
	if cfg.ImportBatchSize <= 0 {
		cfg.ImportBatchSize = 50
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
