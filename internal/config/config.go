package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"comboshare/internal/search"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service Ports
	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Sessions
	SessionSecret string        `env:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `env:"SESSION_TTL" default:"168h"`

	// Administration
	AdminEmails []string `env:"ADMIN_EMAILS"`

	// Redis Cache
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" default:"300"`

	// Ranking
	RankPriorVotes     float64 `env:"RANK_PRIOR_VOTES" default:"10"`
	RankFavoriteWeight float64 `env:"RANK_FAVORITE_WEIGHT" default:"0.05"`
	RankCommentWeight  float64 `env:"RANK_COMMENT_WEIGHT" default:"0.02"`

	// Traffic
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" default:"10"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"5s"`

	// Monitoring
	PrometheusEnabled bool `env:"PROMETHEUS_ENABLED" default:"false"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"info"`
	LogFormat   string   `env:"LOG_FORMAT" default:"text"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:3000"`

	admins AdminSet
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// .env is optional, system env vars still apply
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}
	return loadFromEnv()
}

func loadFromEnv() (*Config, error) {
	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}

	// Sessions
	if err := loadEnvStringRequired(&config.SessionSecret, "SESSION_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.SessionTTL, "SESSION_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}

	// Administration
	if err := loadEnvStringSlice(&config.AdminEmails, "ADMIN_EMAILS", nil); err != nil {
		return nil, err
	}
	config.admins = NewAdminSet(config.AdminEmails)

	// Redis
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", ""); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.CacheTTL, "CACHE_TTL", 300); err != nil {
		return nil, err
	}

	// Ranking
	if err := loadEnvFloat(&config.RankPriorVotes, "RANK_PRIOR_VOTES", 10); err != nil {
		return nil, err
	}
	if err := loadEnvFloat(&config.RankFavoriteWeight, "RANK_FAVORITE_WEIGHT", 0.05); err != nil {
		return nil, err
	}
	if err := loadEnvFloat(&config.RankCommentWeight, "RANK_COMMENT_WEIGHT", 0.02); err != nil {
		return nil, err
	}

	// Traffic
	if err := loadEnvFloat(&config.RateLimitRPS, "RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.RateLimitBurst, "RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RequestTimeout, "REQUEST_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	// Monitoring
	if err := loadEnvBool(&config.PrometheusEnabled, "PROMETHEUS_ENABLED", false); err != nil {
		return nil, err
	}

	// Development
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}
	if err := loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:3000"}); err != nil {
		return nil, err
	}
	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) error {
	if value := os.Getenv(key); value != "" {
		var out []string
		for _, v := range strings.Split(value, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		*target = out
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(c.SessionSecret) < 32 {
		errors = append(errors, "SESSION_SECRET should be at least 32 characters long")
	}
	if c.SessionTTL <= 0 {
		errors = append(errors, "SESSION_TTL must be positive")
	}

	if c.RankPriorVotes <= 0 {
		errors = append(errors, "RANK_PRIOR_VOTES must be greater than 0")
	}
	if c.RankFavoriteWeight < 0 || c.RankCommentWeight < 0 {
		errors = append(errors, "RANK_FAVORITE_WEIGHT and RANK_COMMENT_WEIGHT must not be negative")
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		errors = append(errors, "RATE_LIMIT_RPS must be positive and RATE_LIMIT_BURST at least 1")
	}
	if c.CacheTTL < 0 {
		errors = append(errors, "CACHE_TTL must not be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Admins returns the normalized admin allowlist parsed at load time.
func (c *Config) Admins() AdminSet {
	if c.admins == nil {
		c.admins = NewAdminSet(c.AdminEmails)
	}
	return c.admins
}

// RankWeights returns the recommended-sort tuning.
func (c *Config) RankWeights() search.Weights {
	return search.Weights{
		PriorVotes: c.RankPriorVotes,
		Favorite:   c.RankFavoriteWeight,
		Comment:    c.RankCommentWeight,
	}
}

// CacheExpiry returns CACHE_TTL as a duration.
func (c *Config) CacheExpiry() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
