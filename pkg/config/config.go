package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
	StorageMemory   = "memory"
)

type Config struct {
	Port           int
	Storage        string
	DatabaseURL    string
	MongoURI       string
	MongoDatabase  string
	RedisAddr      string
	JWTSecret      string
	AllowedOrigins []string
	CORSMaxAge     int
	LogLevel       string
}

func Default() *Config {
	return &Config{
		Port:           8080,
		Storage:        StoragePostgres,
		DatabaseURL:    "postgresql://localhost/stream?sslmode=disable",
		MongoURI:       "mongodb://localhost:27017",
		MongoDatabase:  "stream",
		AllowedOrigins: []string{"*"},
		CORSMaxAge:     3600,
		LogLevel:       "info",
	}
}

// Load reads .env files (missing ones are fine) and then the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: failed reading %s: %w", f, err)
		}
	}

	cfg := Default()

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: PORT is not a number: %w", err)
		}
		cfg.Port = port
	}

	cfg.Storage = getEnvOrDefault("STORAGE", cfg.Storage)
	switch cfg.Storage {
	case StoragePostgres, StorageMongo, StorageMemory:
	default:
		return nil, fmt.Errorf("config: unsupported STORAGE %q", cfg.Storage)
	}

	cfg.DatabaseURL = getEnvOrDefault("DATABASE_URL", cfg.DatabaseURL)
	cfg.MongoURI = getEnvOrDefault("MONGODB_URI", cfg.MongoURI)
	cfg.MongoDatabase = getEnvOrDefault("MONGODB_DATABASE", cfg.MongoDatabase)
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if v := os.Getenv("CORS_MAX_AGE"); v != "" {
		maxAge, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: CORS_MAX_AGE is not a number: %w", err)
		}
		cfg.CORSMaxAge = maxAge
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
