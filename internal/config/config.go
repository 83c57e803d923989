package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseDSN   string
	TokenSecret   string
	Env           string
	AllowedOrigin string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// Load reads configuration from the environment, after a best-effort .env
// load for local development.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:          getenv("APP_PORT", "8080"),
		DatabaseDSN:   getenv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=huddle port=5432 sslmode=disable TimeZone=UTC"),
		TokenSecret:   getenv("TOKEN_SECRET", "dev-secret-change-me"),
		Env:           getenv("APP_ENV", "dev"),
		AllowedOrigin: getenv("ALLOWED_ORIGIN", "*"),
	}
}
