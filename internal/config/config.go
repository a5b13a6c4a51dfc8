package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Port string `env:"PORT" env-default:"4000"`
	}

	Database struct {
		URL         string `env:"DATABASE_URL"`
		MaxOpen     int    `env:"DB_MAX_OPEN" env-default:"25"`
		MaxIdle     int    `env:"DB_MAX_IDLE" env-default:"25"`
		MaxLifetime int    `env:"DB_MAX_LIFETIME" env-default:"300"` // seconds
	}

	Auth struct {
		Secret    string `env:"JWT_SECRET"`
		AccessTTL string `env:"ACCESS_TTL" env-default:"20m"`
	}
}

// MustLoad reads configuration from the environment, pulling in a .env
// file first when one exists. Missing required settings are fatal.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.Auth.Secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return &cfg
}
