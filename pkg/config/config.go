package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Every environment variable is read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	// Storage
	Database DatabaseConfig
	Redis    RedisConfig

	// Data sources
	NSE      SourceConfig
	Yahoo    SourceConfig
	Screener SourceConfig

	// Pipeline
	Pipeline PipelineConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// SourceConfig holds the per-source fetch budget and endpoints.
type SourceConfig struct {
	BaseURL           string
	RequestsPerMinute int
	MinDelay          time.Duration
	Timeout           time.Duration
	MaxRetries        int
	BackoffFactor     float64
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// PipelineConfig holds batch run settings.
type PipelineConfig struct {
	Symbols          []string // default universe for scheduled runs
	BoosterCap       float64  // max total quality boost per validation
	LargeCapMinCrore float64
	MidCapMinCrore   float64
	CronSpec         string // daily run schedule
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		NSE: SourceConfig{
			BaseURL:           getEnv("NSE_BASE_URL", "https://archives.nseindia.com"),
			RequestsPerMinute: getEnvAsInt("NSE_REQUESTS_PER_MINUTE", 30),
			MinDelay:          getEnvAsDuration("NSE_MIN_DELAY", "2s"),
			Timeout:           getEnvAsDuration("NSE_TIMEOUT", "30s"),
			MaxRetries:        getEnvAsInt("NSE_MAX_RETRIES", 3),
			BackoffFactor:     getEnvAsFloat("NSE_BACKOFF_FACTOR", 2.0),
		},

		Yahoo: SourceConfig{
			BaseURL:           getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			RequestsPerMinute: getEnvAsInt("YAHOO_REQUESTS_PER_MINUTE", 60),
			MinDelay:          getEnvAsDuration("YAHOO_MIN_DELAY", "1s"),
			Timeout:           getEnvAsDuration("YAHOO_TIMEOUT", "30s"),
			MaxRetries:        getEnvAsInt("YAHOO_MAX_RETRIES", 3),
			BackoffFactor:     getEnvAsFloat("YAHOO_BACKOFF_FACTOR", 2.0),
		},

		Screener: SourceConfig{
			BaseURL:           getEnv("SCREENER_BASE_URL", "https://www.screener.in"),
			RequestsPerMinute: getEnvAsInt("SCREENER_REQUESTS_PER_MINUTE", 10),
			MinDelay:          getEnvAsDuration("SCREENER_MIN_DELAY", "6s"),
			Timeout:           getEnvAsDuration("SCREENER_TIMEOUT", "30s"),
			MaxRetries:        getEnvAsInt("SCREENER_MAX_RETRIES", 2),
			BackoffFactor:     getEnvAsFloat("SCREENER_BACKOFF_FACTOR", 2.0),
		},

		Pipeline: PipelineConfig{
			Symbols:          getEnvAsList("PIPELINE_SYMBOLS", nil),
			BoosterCap:       getEnvAsFloat("VALIDATION_BOOSTER_CAP", 30),
			LargeCapMinCrore: getEnvAsFloat("LARGE_CAP_MIN_CRORE", 20000),
			MidCapMinCrore:   getEnvAsFloat("MID_CAP_MIN_CRORE", 5000),
			CronSpec:         getEnv("PIPELINE_CRON", "30 18 * * 1-5"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Pipeline.BoosterCap < 0 {
		return fmt.Errorf("VALIDATION_BOOSTER_CAP must be non-negative")
	}
	if c.Pipeline.MidCapMinCrore > c.Pipeline.LargeCapMinCrore {
		return fmt.Errorf("MID_CAP_MIN_CRORE must not exceed LARGE_CAP_MIN_CRORE")
	}

	for name, src := range map[string]SourceConfig{"NSE": c.NSE, "YAHOO": c.Yahoo, "SCREENER": c.Screener} {
		if src.RequestsPerMinute <= 0 {
			return fmt.Errorf("%s_REQUESTS_PER_MINUTE must be positive", name)
		}
		if src.BackoffFactor < 1 {
			return fmt.Errorf("%s_BACKOFF_FACTOR must be >= 1", name)
		}
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
