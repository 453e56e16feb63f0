// Package app wires the assistant's services together from configuration.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jihyunk/stylemate/src/assistant"
	"github.com/jihyunk/stylemate/src/config"
	"github.com/jihyunk/stylemate/src/embedding"
	"github.com/jihyunk/stylemate/src/geo"
	"github.com/jihyunk/stylemate/src/llm"
	"github.com/jihyunk/stylemate/src/llm/geminiclient"
	"github.com/jihyunk/stylemate/src/llm/groqclient"
	"github.com/jihyunk/stylemate/src/retrieval"
	"github.com/jihyunk/stylemate/src/storage"
	"github.com/jihyunk/stylemate/src/tools"
	"github.com/jihyunk/stylemate/src/vectorindex"
	"github.com/jihyunk/stylemate/src/weather"
)

// App represents the assembled application with all services initialized.
type App struct {
	Assistant *assistant.Service
	Store     *storage.Store
	DB        *storage.DB
	Index     *vectorindex.Index
	Weather   *weather.Service
	Logger    *slog.Logger
	Config    *config.Config
}

// New creates a new App instance with all services initialized.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	dbPath := cfg.Storage.DatabasePath
	if dbPath == "" {
		dbPath = config.GetDefaultDatabasePath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	store := storage.NewStore(db)

	index, err := newIndex(cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	geocoder := geo.NewGeocoder(geo.GeocoderConfig{
		APIKey:  cfg.Geo.KakaoAPIKey,
		BaseURL: cfg.Geo.BaseURL,
		Logger:  logger,
	})

	weatherSvc := weather.NewService(weather.Config{
		APIKey:   cfg.Weather.APIKey,
		BaseURL:  cfg.Weather.BaseURL,
		CacheTTL: cfg.WeatherCacheTTL(),
		Resolver: geocoder,
		Logger:   logger,
	})

	embedder := embedding.NewClient(embedding.Config{
		APIKey:  cfg.Embedding.APIKey,
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
		Logger:  logger,
	})

	engine := retrieval.NewEngine(embedder, index, store, logger)

	registry := tools.NewCatalog(tools.Deps{
		Store:    store,
		Searcher: engine,
		Weather:  weatherSvc,
		Logger:   logger,
	})

	client, err := newCompletionClient(cfg, registry.PromptCatalog(), logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	svc := assistant.NewService(assistant.Config{
		Store:      store,
		Dispatcher: registry,
		LLM:        client,
		Weather:    weatherSvc,
		Embedder:   embedder,
		Index:      index,
		Logger:     logger,
	})

	return &App{
		Assistant: svc,
		Store:     store,
		DB:        db,
		Index:     index,
		Weather:   weatherSvc,
		Logger:    logger,
		Config:    cfg,
	}, nil
}

func newIndex(cfg *config.Config, logger *slog.Logger) (*vectorindex.Index, error) {
	if dir := cfg.Vector.PersistDir; dir != "" {
		index, err := vectorindex.NewPersistent(dir, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open vector index: %w", err)
		}
		return index, nil
	}
	return vectorindex.New(logger), nil
}

func newCompletionClient(cfg *config.Config, functions string, logger *slog.Logger) (llm.Client, error) {
	switch cfg.Provider.Default {
	case "", "groq":
		return groqclient.NewClient(groqclient.Config{
			APIKey:  cfg.Provider.Groq.APIKey,
			BaseURL: cfg.Provider.Groq.BaseURL,
			Model:   cfg.Provider.Groq.Model,
			Logger:  logger,
		}), nil
	case "gemini":
		return geminiclient.NewClient(geminiclient.Config{
			APIKey:    cfg.Provider.Gemini.APIKey,
			BaseURL:   cfg.Provider.Gemini.BaseURL,
			Functions: functions,
			Logger:    logger,
		}), nil
	case "scripted":
		return &llm.ScriptedClient{}, nil
	}
	return nil, fmt.Errorf("unknown completion provider: %s", cfg.Provider.Default)
}

// Close closes all resources held by the app.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
