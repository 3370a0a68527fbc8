package config

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Fallback signing secret for local development only. Anything outside dev
// refuses to start without an explicit JWT_SECRET.
const devJWTSecret = "dev-secret-change-me"

type Config struct {
	Env  string
	Port int

	// DBType picks the store driver: "mongo", "postgres", or empty for the
	// in-memory store (dev only).
	DBType      string
	MongoURL    string
	MongoDB     string
	PostgresURL string

	JWTSecret string
	TokenTTL  time.Duration

	AdminEmail    string
	AdminPassword string

	OTLPEndpoint string
}

func Load() (Config, error) {
	// Absent .env is fine, the real environment wins either way.
	_ = godotenv.Load()

	cfg := Config{
		Env:           getEnv("APP_ENV", "dev"),
		Port:          getEnvInt("PORT", 8080),
		DBType:        getEnv("DB_TYPE", ""),
		MongoURL:      getEnv("MONGO_URL", "mongodb://127.0.0.1:27017"),
		MongoDB:       getEnv("MONGO_DB", "dashboard"),
		PostgresURL:   getEnv("POSTGRES_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		OTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env != "dev" {
			return Config{}, errors.New("JWT_SECRET must be set outside dev")
		}
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

// UsingDevSecret reports whether the insecure dev fallback is in play so the
// caller can log a warning.
func (c Config) UsingDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			return fallback
		}

		return d
	}
	return fallback
}
