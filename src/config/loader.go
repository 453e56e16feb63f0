package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
)

// envPrefix namespaces the environment overrides, e.g.
// STYLEMATE_GROQ_API_KEY.
const envPrefix = "STYLEMATE_"

// Loader reads, merges and validates configuration: defaults, then the
// config file, then environment variables.
type Loader struct {
	fs        afero.Fs
	validator *Validator
}

func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{
		fs:        fs,
		validator: NewValidator(),
	}
}

// Load builds the effective configuration. A missing config file is not an
// error; a malformed one is.
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		path = GetDefaultConfigPath()
	}

	if fileCfg, err := l.loadFile(path); err == nil {
		config = mergeConfigs(config, fileCfg)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	applyEnvironmentOverrides(config)

	if err := l.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (l *Loader) loadFile(path string) (*Config, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &config, nil
}

// mergeConfigs merges two configurations with the override winning per
// non-zero field.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}
	if override.Provider.Default != "" {
		result.Provider.Default = override.Provider.Default
	}
	result.Provider.Groq = mergeAPI(result.Provider.Groq, override.Provider.Groq)
	result.Provider.Gemini = mergeAPI(result.Provider.Gemini, override.Provider.Gemini)

	if override.Embedding.APIKey != "" {
		result.Embedding.APIKey = override.Embedding.APIKey
	}
	if override.Embedding.BaseURL != "" {
		result.Embedding.BaseURL = override.Embedding.BaseURL
	}
	if override.Embedding.Model != "" {
		result.Embedding.Model = override.Embedding.Model
	}

	if override.Weather.APIKey != "" {
		result.Weather.APIKey = override.Weather.APIKey
	}
	if override.Weather.BaseURL != "" {
		result.Weather.BaseURL = override.Weather.BaseURL
	}
	if override.Weather.CacheTTLMinutes != 0 {
		result.Weather.CacheTTLMinutes = override.Weather.CacheTTLMinutes
	}

	if override.Geo.KakaoAPIKey != "" {
		result.Geo.KakaoAPIKey = override.Geo.KakaoAPIKey
	}
	if override.Geo.BaseURL != "" {
		result.Geo.BaseURL = override.Geo.BaseURL
	}

	if override.Storage.DatabasePath != "" {
		result.Storage.DatabasePath = override.Storage.DatabasePath
	}
	if override.Vector.PersistDir != "" {
		result.Vector.PersistDir = override.Vector.PersistDir
	}

	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		result.Logging.Format = override.Logging.Format
	}

	return &result
}

func mergeAPI(base, override APIConfig) APIConfig {
	if override.APIKey != "" {
		base.APIKey = override.APIKey
	}
	if override.BaseURL != "" {
		base.BaseURL = override.BaseURL
	}
	if override.Model != "" {
		base.Model = override.Model
	}
	return base
}

func applyEnvironmentOverrides(config *Config) {
	overrides := map[string]*string{
		"PROVIDER":          &config.Provider.Default,
		"GROQ_API_KEY":      &config.Provider.Groq.APIKey,
		"GEMINI_API_KEY":    &config.Provider.Gemini.APIKey,
		"EMBEDDING_API_KEY": &config.Embedding.APIKey,
		"WEATHER_API_KEY":   &config.Weather.APIKey,
		"KAKAO_API_KEY":     &config.Geo.KakaoAPIKey,
		"DATABASE_PATH":     &config.Storage.DatabasePath,
		"LOG_LEVEL":         &config.Logging.Level,
	}
	for suffix, target := range overrides {
		if value := os.Getenv(envPrefix + suffix); value != "" {
			*target = value
		}
	}
}

// WeatherCacheTTL converts the configured minutes to a duration.
func (c *Config) WeatherCacheTTL() time.Duration {
	return time.Duration(c.Weather.CacheTTLMinutes) * time.Minute
}
