package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the server configuration, read from the environment
type Config struct {
	HTTPAddr      string     `env:"HTTP_ADDR" envDefault:":8080"`
	RedisAddr     string     `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string     `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int        `env:"REDIS_DB" envDefault:"0"`
	LogLevel      slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

// Load reads .env if present, then parses the environment
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
