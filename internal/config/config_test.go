package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("ALLOWED_ORIGIN", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "dev-secret-change-me", cfg.TokenSecret)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("DATABASE_DSN", "host=db user=x dbname=y")
	t.Setenv("ALLOWED_ORIGIN", "https://app.example.com")

	cfg := Load()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "s3cret", cfg.TokenSecret)
	assert.Equal(t, "host=db user=x dbname=y", cfg.DatabaseDSN)
	assert.Equal(t, "https://app.example.com", cfg.AllowedOrigin)
}
