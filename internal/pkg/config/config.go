package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogPath      string `env:"LOG_PATH" envDefault:"logs/app.log"`
	IndexPath    string `env:"INDEX_PATH" envDefault:"logs/app.log.index.toml"`
	OutputDir    string `env:"OUTPUT_DIR" envDefault:"output"`
	StrictOrder  bool   `env:"STRICT_ORDER" envDefault:"true"`
	CacheBackend string `env:"CACHE_BACKEND" envDefault:"file"` // file | redis
	RedisAddr    string `env:"REDIS_ADDR"`
	RedisKey     string `env:"REDIS_INDEX_KEY" envDefault:"log-extractor:index"`
	PostgresURL  string `env:"POSTGRES_URL"`
	MetricsAddr  string `env:"METRICS_ADDR"` // empty disables the metrics server
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
