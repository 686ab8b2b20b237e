// Package config loads the immutable process configuration from the
// environment, optionally seeded by a .env file.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	RedisAddr     string `env:"REDIS_ADDR,required"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	SecretKey     string `env:"SECRET_KEY,required"`
	ListenAddr    string `env:"LISTEN_ADDR" envDefault:":8080"`
}

var godotenvLoad = godotenv.Load

func Load() (Config, error) {
	// A missing .env is fine; real env vars win either way.
	_ = godotenvLoad()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
