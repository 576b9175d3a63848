package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration. Every retrieval and quality threshold
// is tunable here so the pipeline stays a single configurable implementation
// rather than a family of hard-coded variants.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// Chat completion
	OpenAIKey     string   `env:"OPENAI_API_KEY"`
	ChatModel     string   `env:"CHAT_MODEL" envDefault:"gpt-3.5-turbo"`
	AllowedModels []string `env:"ALLOWED_MODELS" envSeparator:"," envDefault:"gpt-3.5-turbo"`
	Temperature   float64  `env:"CHAT_TEMPERATURE" envDefault:"0.2"`
	MaxTokens     int      `env:"CHAT_MAX_TOKENS" envDefault:"500"`

	// Chunking
	ChunkSize        int     `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap     int     `env:"CHUNK_OVERLAP" envDefault:"200"`
	MinChunkLength   int     `env:"MIN_CHUNK_LENGTH" envDefault:"50"`
	MaxMetadataRatio float64 `env:"MAX_METADATA_RATIO" envDefault:"0.1"`

	// Retrieval
	TopK     int `env:"RETRIEVAL_TOP_K" envDefault:"3"`
	MinScore int `env:"RETRIEVAL_MIN_SCORE" envDefault:"2"`

	// Answer quality gate
	MinAnswerLength    int     `env:"QUALITY_MIN_ANSWER_LENGTH" envDefault:"20"`
	MaxFragmentMarkers int     `env:"QUALITY_MAX_FRAGMENT_MARKERS" envDefault:"2"`
	MaxTechnicalRatio  float64 `env:"QUALITY_MAX_TECHNICAL_RATIO" envDefault:"0.3"`

	// Answer cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"none"` // "redis" or "none"
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"300"` // seconds
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// ModelAllowed reports whether the given model name is on the allow-list.
// An empty name means the configured default model and is always allowed.
func (c Config) ModelAllowed(model string) bool {
	if model == "" {
		return true
	}
	for _, m := range c.AllowedModels {
		if m == model {
			return true
		}
	}
	return false
}
