package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("BACKEND_URL", "http://backend:5000")
		t.Setenv("BACKEND_TIMEOUT", "3s")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("ASSET_MANIFEST", "assets.yaml")
		t.Setenv("CORS_ORIGIN", "http://dashboard.local")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "http://backend:5000", cfg.BackendURL)
		assert.Equal(t, 3*time.Second, cfg.BackendTimeout)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, "assets.yaml", cfg.AssetManifest)
		assert.Equal(t, "http://dashboard.local", cfg.CORSOrigin)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("APP_PORT", "")
		t.Setenv("BACKEND_URL", "")
		t.Setenv("BACKEND_TIMEOUT", "not-a-duration")
		t.Setenv("CORS_ORIGIN", "")

		cfg := LoadConfig()

		assert.Equal(t, defaultAppPort, cfg.AppPort)
		assert.Equal(t, defaultBackendURL, cfg.BackendURL)
		assert.Equal(t, defaultBackendTimeout, cfg.BackendTimeout)
		assert.Equal(t, defaultCORSOrigin, cfg.CORSOrigin)
	})
}
