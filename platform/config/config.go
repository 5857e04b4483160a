// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides settings for verifying reporter identity tokens.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketReportPhotos() string
	GetMinIOPublicBaseURL() string
	IsMinIOEnabled() bool
}

// PlacesConfig provides settings for the autocomplete/place-details provider.
type PlacesConfig interface {
	GetPlacesBaseURL() string
	GetPlacesAPIKey() string
	GetPlacesRegionBias() string
	GetPlacesMinQueryLength() int
}

// GeocodeConfig provides settings for reverse geocoding and device location.
type GeocodeConfig interface {
	GetGeocodeBaseURL() string
	GetGeocodeAPIKey() string
	GetDeviceLocationTimeout() time.Duration
}

// RedisConfig provides settings for the Redis cache.
type RedisConfig interface {
	GetRedisURL() string
	GetGeocodeCacheTTL() time.Duration
	IsRedisEnabled() bool
}

// EmailConfig provides settings for confirmation email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                     string
	HTTPAddr                string
	DatabaseURL             string
	JWTAccessSecret         string
	CORSAllowAll            bool
	CORSOrigins             []string
	CORSAllowCreds          bool
	MinIOEndpoint           string
	MinIOAccessKey          string
	MinIOSecretKey          string
	MinIOUseSSL             bool
	MinIOMaxFileSize        int64
	MinioBucketReportPhotos string
	MinIOPublicBaseURL      string
	PlacesBaseURL           string
	PlacesAPIKey            string
	PlacesRegionBias        string
	PlacesMinQueryLength    int
	GeocodeBaseURL          string
	GeocodeAPIKey           string
	DeviceLocationTimeout   time.Duration
	RedisURL                string
	GeocodeCacheTTL         time.Duration
	EmailEnabled            bool
	SMTPHost                string
	SMTPPort                int
	SMTPUsername            string
	SMTPPassword            string
	EmailFromName           string
	EmailFromAddress        string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string          { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string         { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string         { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool              { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64        { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketReportPhotos() string { return c.MinioBucketReportPhotos }
func (c *Config) GetMinIOPublicBaseURL() string     { return c.MinIOPublicBaseURL }
func (c *Config) IsMinIOEnabled() bool              { return c.MinIOEndpoint != "" }

// PlacesConfig implementation
func (c *Config) GetPlacesBaseURL() string     { return c.PlacesBaseURL }
func (c *Config) GetPlacesAPIKey() string      { return c.PlacesAPIKey }
func (c *Config) GetPlacesRegionBias() string  { return c.PlacesRegionBias }
func (c *Config) GetPlacesMinQueryLength() int { return c.PlacesMinQueryLength }

// GeocodeConfig implementation
func (c *Config) GetGeocodeBaseURL() string                { return c.GeocodeBaseURL }
func (c *Config) GetGeocodeAPIKey() string                 { return c.GeocodeAPIKey }
func (c *Config) GetDeviceLocationTimeout() time.Duration  { return c.DeviceLocationTimeout }

// RedisConfig implementation
func (c *Config) GetRedisURL() string                { return c.RedisURL }
func (c *Config) GetGeocodeCacheTTL() time.Duration  { return c.GeocodeCacheTTL }
func (c *Config) IsRedisEnabled() bool               { return c.RedisURL != "" }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:                     getEnv("APP_ENV", "development"),
		HTTPAddr:                getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		JWTAccessSecret:         getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:            corsAllowAll,
		CORSOrigins:             corsOrigins,
		CORSAllowCreds:          strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		MinIOEndpoint:           getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:          getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:          getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:             strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:        mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "10485760")),
		MinioBucketReportPhotos: getEnv("MINIO_BUCKET_REPORT_PHOTOS", "report-photos"),
		MinIOPublicBaseURL:      getEnv("MINIO_PUBLIC_BASE_URL", ""),
		PlacesBaseURL:           getEnv("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		PlacesAPIKey:            getEnv("PLACES_API_KEY", ""),
		PlacesRegionBias:        getEnv("PLACES_REGION_BIAS", "in"),
		PlacesMinQueryLength:    mustInt(getEnv("PLACES_MIN_QUERY_LENGTH", "3")),
		GeocodeBaseURL:          getEnv("GEOCODE_BASE_URL", "https://maps.googleapis.com/maps/api/geocode"),
		GeocodeAPIKey:           getEnv("GEOCODE_API_KEY", ""),
		DeviceLocationTimeout:   mustDuration(getEnv("DEVICE_LOCATION_TIMEOUT", "10s")),
		RedisURL:                getEnv("REDIS_URL", ""),
		GeocodeCacheTTL:         mustDuration(getEnv("GEOCODE_CACHE_TTL", "24h")),
		EmailEnabled:            emailEnabled && smtpHost != "",
		SMTPHost:                smtpHost,
		SMTPPort:                mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:            getEnv("SMTP_USERNAME", ""),
		SMTPPassword:            getEnv("SMTP_PASSWORD", ""),
		EmailFromName:           getEnv("EMAIL_FROM_NAME", "Outage Portal"),
		EmailFromAddress:        getEnv("EMAIL_FROM_ADDRESS", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.PlacesMinQueryLength < 1 {
		return nil, fmt.Errorf("PLACES_MIN_QUERY_LENGTH must be at least 1")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
