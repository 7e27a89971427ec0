package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string
	Environment   string
	LogLevel      string
	DataDir       string
	CatalogCache  string
	QuoteCacheTTL time.Duration
	Database      DatabaseConfig
	Redis         RedisConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether a quote log database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a quote cache is configured
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

const (
	CatalogCacheAuto = "auto"
	CatalogCacheOn   = "on"
	CatalogCacheOff  = "off"
)

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("CATALOG_CACHE", CatalogCacheAuto)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("QUOTE_CACHE_TTL", "10m")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	ttl, err := time.ParseDuration(getEnvOrViper("QUOTE_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUOTE_CACHE_TTL: %w", err)
	}
	redisDB, err := strconv.Atoi(getEnvOrViper("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		Port:          getEnvOrViper("PORT", "8080"),
		Environment:   getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:      getEnvOrViper("LOG_LEVEL", "info"),
		DataDir:       getEnvOrViper("DATA_DIR", "data"),
		CatalogCache:  strings.ToLower(getEnvOrViper("CATALOG_CACHE", CatalogCacheAuto)),
		QuoteCacheTTL: ttl,
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", ""),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "quoteapi"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", ""),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
	}

	// Validate
	switch cfg.CatalogCache {
	case CatalogCacheAuto, CatalogCacheOn, CatalogCacheOff:
	default:
		return nil, fmt.Errorf("CATALOG_CACHE must be one of auto, on, off; got %q", cfg.CatalogCache)
	}

	return cfg, nil
}

// CatalogCacheBypass reports whether catalog files are re-read on every access.
// In auto mode only development re-reads.
func (c *Config) CatalogCacheBypass() bool {
	switch c.CatalogCache {
	case CatalogCacheOn:
		return false
	case CatalogCacheOff:
		return true
	default:
		return c.Environment == "development"
	}
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
