package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".env")

	t.Run("should apply defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		cfg, err := Load(missing)
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, StoragePostgres, cfg.Storage)
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
		assert.Equal(t, 3600, cfg.CORSMaxAge)
		assert.Equal(t, ":8080", cfg.Addr())
	})

	t.Run("should read environment", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "9000")
		t.Setenv("STORAGE", "mongo")
		t.Setenv("ALLOWED_ORIGINS", "https://a.dev, https://b.dev,")
		t.Setenv("REDIS_ADDR", "redis://localhost:6379")
		cfg, err := Load(missing)
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, StorageMongo, cfg.Storage)
		assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.AllowedOrigins)
		assert.Equal(t, "redis://localhost:6379", cfg.RedisAddr)
	})

	t.Run("should read .env file", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("JWT_SECRET=from-file\nCORS_MAX_AGE=60\n"), 0o600))
		t.Setenv("JWT_SECRET", "")
		os.Unsetenv("JWT_SECRET")
		t.Cleanup(func() { os.Unsetenv("JWT_SECRET"); os.Unsetenv("CORS_MAX_AGE") })

		cfg, err := Load(envFile)
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.JWTSecret)
		assert.Equal(t, 60, cfg.CORSMaxAge)
	})

	t.Run("should require JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load(missing)
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("should reject unknown storage", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORAGE", "cassandra")
		_, err := Load(missing)
		assert.ErrorContains(t, err, "cassandra")
	})

	t.Run("should reject bad port", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "eighty")
		_, err := Load(missing)
		assert.ErrorContains(t, err, "PORT")
	})
}
