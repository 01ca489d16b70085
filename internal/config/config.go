package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort        = "8080"
	defaultBackendURL     = "http://localhost:5000"
	defaultBackendTimeout = 15 * time.Second
	defaultCORSOrigin     = "http://localhost:5173"
)

type Config struct {
	AppEnv  string
	AppPort string

	BackendURL     string
	BackendTimeout time.Duration

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret     string
	AssetManifest string
	CORSOrigin    string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         os.Getenv("APP_ENV"),
		AppPort:        getEnv("APP_PORT", defaultAppPort),
		BackendURL:     getEnv("BACKEND_URL", defaultBackendURL),
		BackendTimeout: getDuration("BACKEND_TIMEOUT", defaultBackendTimeout),
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         os.Getenv("DB_PORT"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AssetManifest:  os.Getenv("ASSET_MANIFEST"),
		CORSOrigin:     getEnv("CORS_ORIGIN", defaultCORSOrigin),
	}

	if cfg.DBHost == "" || cfg.JWTSecret == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration accepts Go duration strings ("15s", "1m"); anything else
// falls back to the default.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
