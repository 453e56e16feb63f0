// Package config loads the application configuration from an XDG config
// file with environment variable overrides.
package config

import "fmt"

// Config is the complete application configuration.
type Config struct {
	// Version of the configuration format
	Version string `json:"version"`

	// Provider holds per-provider API settings
	Provider ProviderConfig `json:"provider"`

	// Embedding holds the embedding provider settings
	Embedding EmbeddingConfig `json:"embedding"`

	// Weather holds the KMA forecast provider settings
	Weather WeatherConfig `json:"weather"`

	// Geo holds the Kakao geocoding settings
	Geo GeoConfig `json:"geo"`

	// Storage holds database settings
	Storage StorageConfig `json:"storage"`

	// Vector holds vector index settings
	Vector VectorConfig `json:"vector"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`
}

// ProviderConfig selects and configures the completion backends.
type ProviderConfig struct {
	// Default is the completion provider used for conversations.
	Default string `json:"default" validate:"omitempty,completion_provider"`

	Groq   APIConfig `json:"groq"`
	Gemini APIConfig `json:"gemini"`
}

// APIConfig holds credentials and endpoint overrides for one provider.
type APIConfig struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`
	Model   string `json:"model,omitempty"`
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`
	Model   string `json:"model,omitempty"`
}

// WeatherConfig configures the short-term forecast provider.
type WeatherConfig struct {
	APIKey          string `json:"api_key,omitempty"`
	BaseURL         string `json:"base_url,omitempty" validate:"omitempty,url"`
	CacheTTLMinutes int    `json:"cache_ttl_minutes,omitempty" validate:"omitempty,min=1"`
}

// GeoConfig configures address geocoding.
type GeoConfig struct {
	KakaoAPIKey string `json:"kakao_api_key,omitempty"`
	BaseURL     string `json:"base_url,omitempty" validate:"omitempty,url"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	// DatabasePath is the sqlite file location.
	DatabasePath string `json:"database_path,omitempty"`
}

// VectorConfig holds vector index settings.
type VectorConfig struct {
	// PersistDir stores the index on disk; empty keeps it in memory.
	PersistDir string `json:"persist_dir,omitempty"`
}

// LoggingConfig defines logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `json:"level,omitempty" validate:"omitempty,log_level"`

	// Format is the output format (text, json)
	Format string `json:"format,omitempty" validate:"omitempty,log_format"`
}

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config field %s: %s", e.Field, e.Message)
}
