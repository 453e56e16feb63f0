package config

// DefaultConfig returns the baseline configuration. File values and
// environment overrides are merged on top.
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Provider: ProviderConfig{
			Default: "groq",
			Groq: APIConfig{
				Model: "llama-3.3-70b-versatile",
			},
		},
		Embedding: EmbeddingConfig{
			Model: "text-embedding-004",
		},
		Weather: WeatherConfig{
			CacheTTLMinutes: 60,
		},
		Storage: StorageConfig{
			DatabasePath: GetDefaultDatabasePath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
