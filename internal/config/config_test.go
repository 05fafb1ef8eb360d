package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGIN", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("AUTH_RATE_MAX", "")

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30, cfg.AuthRateMax)
	assert.Equal(t, time.Minute, cfg.AuthRateWindow)
	assert.NotEmpty(t, cfg.UploadDir)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/spendwise")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("AUTH_RATE_MAX", "5")
	t.Setenv("UPLOAD_DIR", "/var/uploads")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://localhost/spendwise", cfg.DatabaseURL)
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.AuthRateMax)
	assert.Equal(t, "/var/uploads", cfg.UploadDir)
}

func TestValidate(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/spendwise")
	t.Setenv("JWT_SECRET", "s3cret")
	require.NoError(t, Load().Validate())

	t.Setenv("JWT_SECRET", "")
	err := Load().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("DATABASE_URL", "")
	err = Load().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestBadEnvValuesFallBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("AUTH_RATE_MAX", "-3")

	cfg := Load()

	assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30, cfg.AuthRateMax)
}
