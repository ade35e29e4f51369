// Package config provides configuration management for the Rainline application.
package config

import (
	"fmt"
	"time"
)

// Storage backends
const (
	StorageBackendFile     = "file"
	StorageBackendPostgres = "postgres"
)

// Telemetry provider kinds
const (
	TelemetryProviderHTTP = "http"
	TelemetryProviderFile = "file"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Storage   StorageConfig   `mapstructure:"storage" validate:"required"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" validate:"required"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache" validate:"required"`
	API       APIConfig       `mapstructure:"api" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	LogFormat   string `mapstructure:"log_format" validate:"omitempty,oneof=json text"`
}

// DatabaseConfig represents database connection configuration. Only used
// when storage.backend is postgres.
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"gte=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"gte=0"`
}

// StorageConfig selects where computed standings are persisted
type StorageConfig struct {
	Backend   string `mapstructure:"backend" validate:"required,oneof=file postgres"`
	Directory string `mapstructure:"directory"`
}

// TelemetryConfig represents the telemetry provider configuration
type TelemetryConfig struct {
	Provider          string  `mapstructure:"provider" validate:"required,oneof=http file"`
	BaseURL           string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey            string  `mapstructure:"api_key"`
	ExportDirectory   string  `mapstructure:"export_directory"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" validate:"gt=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"gt=0"`
	CacheTTLMinutes   int     `mapstructure:"cache_ttl_minutes" validate:"gte=0"`
}

// AnalysisConfig controls the wet-performance engine
type AnalysisConfig struct {
	IncludePractice bool `mapstructure:"include_practice"`
	// MissingWeatherPolicy decides whether a practice session without any
	// weather samples may serve as a dry baseline: "accept" or "reject".
	MissingWeatherPolicy string `mapstructure:"missing_weather_policy" validate:"required,missingweather"`
	Concurrency          int    `mapstructure:"concurrency" validate:"gte=1,lte=16"`
	Seasons              []int  `mapstructure:"seasons" validate:"dive,gte=1950"`
}

// CacheConfig configures the serving-layer cache
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"gt=0"`
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ScheduleConfig configures the periodic precompute job
type ScheduleConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetAPIAddress returns the listen address of the HTTP API
func (c *Config) GetAPIAddress() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

// CacheTTL returns the serving cache TTL
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// TelemetryCacheTTL returns how long loaded sessions stay cached
func (c *Config) TelemetryCacheTTL() time.Duration {
	return time.Duration(c.Telemetry.CacheTTLMinutes) * time.Minute
}
