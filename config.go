package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/trcsocial/shopify-csv-uploader/database"
	"github.com/trcsocial/shopify-csv-uploader/models"
)

// Config holds all configuration for the exporter service.
type Config struct {
	Port              string
	JunoAPIBase       string
	JunoAPIKey        string
	JunoTimeout       time.Duration
	LookupConcurrency int
	RedisURL          string
	PostgresHost      string
	PostgresPort      string
	PostgresUser      string
	PostgresPassword  string
	PostgresDB        string
	PostgresSSLMode   string
	PostgresTimeZone  string
	ExportS3Bucket    string
	ExportS3Prefix    string
}

// Strategy returns the lookup strategy implied by the configuration: live
// when a catalog API base is set, fallback otherwise.
func (c *Config) Strategy() models.LookupStrategy {
	if c.JunoAPIBase != "" {
		return models.StrategyLive
	}
	return models.StrategyFallback
}

// PostgresConfig builds the connection settings for the history database.
func (c *Config) PostgresConfig() database.PostgresConfig {
	return database.PostgresConfig{
		Host:     c.PostgresHost,
		Port:     c.PostgresPort,
		User:     c.PostgresUser,
		Password: c.PostgresPassword,
		DBName:   c.PostgresDB,
		SSLMode:  c.PostgresSSLMode,
		TimeZone: c.PostgresTimeZone,
	}
}

// LoadConfig reads configuration from environment variables. Catalog API,
// Redis, Postgres and S3 settings are all optional; the service degrades to
// offline fallback mode with no cache, history or archive.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8092"),
		JunoAPIBase:       os.Getenv("JUNO_API_BASE"),
		JunoAPIKey:        os.Getenv("JUNO_API_KEY"),
		JunoTimeout:       time.Duration(getEnvInt("JUNO_TIMEOUT_SECONDS", 10)) * time.Second,
		LookupConcurrency: getEnvInt("LOOKUP_CONCURRENCY", 4),
		RedisURL:          os.Getenv("REDIS_URL"),
		PostgresHost:      os.Getenv("POSTGRES_HOST"),
		PostgresPort:      getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:      getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword:  os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:        getEnv("POSTGRES_DB", "shopify_exports"),
		PostgresSSLMode:   getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone:  getEnv("POSTGRES_TIMEZONE", "Asia/Kolkata"),
		ExportS3Bucket:    os.Getenv("EXPORT_S3_BUCKET"),
		ExportS3Prefix:    getEnv("EXPORT_S3_PREFIX", "exports"),
	}

	if cfg.JunoAPIBase != "" {
		u, err := url.Parse(cfg.JunoAPIBase)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid JUNO_API_BASE %q", cfg.JunoAPIBase)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
