package app

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"docchat/internal/cache"
	"docchat/internal/config"
	"docchat/internal/docstore"
	"docchat/internal/llm"
	"docchat/internal/logger"
	"docchat/internal/rag"
	"docchat/internal/retrieval"
)

// Deps bundles common runtime dependencies for the server.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	Store  *docstore.Store
	Cache  cache.Cache
	LLM    llm.Client
	RAG    *rag.Service
}

// Build loads env, config, and wires the pipeline components.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is normal outside local development.
		slog.Debug("no .env file loaded", "err", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	store := docstore.New()
	engine := retrieval.New(retrieval.Options{
		TopK:     cfg.TopK,
		MinScore: cfg.MinScore,
	})

	// The default key may be absent; requests can carry their own, and the
	// service checks key availability before every call.
	client := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.ChatModel))
	if cfg.OpenAIKey == "" {
		log.Warn("no server-side OpenAI API key configured; requests must provide one")
	}

	answerCache := buildCache(cfg, log)

	svc := rag.NewService(cfg, log, store, engine, client, answerCache)

	return Deps{
		Config: cfg,
		Log:    log,
		Store:  store,
		Cache:  answerCache,
		LLM:    client,
		RAG:    svc,
	}, nil
}

// buildCache returns a Redis-backed answer cache when configured, falling
// back to a no-op cache otherwise.
func buildCache(cfg config.Config, log *slog.Logger) cache.Cache {
	switch cfg.CacheProvider {
	case "redis":
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn("redis unavailable, answer caching disabled", "err", err)
			return cache.NewNoOpCache()
		}
		log.Info("using Redis answer cache", "addr", cfg.RedisAddr)
		return c
	default:
		return cache.NewNoOpCache()
	}
}
