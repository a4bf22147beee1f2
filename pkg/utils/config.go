package utils

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Addr string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type CatalogConfig struct {
	BaseURL string
	APIKey  string
}

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

// Config is built once at startup and passed by injection into the client,
// guard and store constructors. Nothing reads the environment after Load.
type Config struct {
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Catalog  CatalogConfig
	Auth     AuthConfig
	LogLevel string
}

// Load reads .env if present, then the environment, falling back to dev
// defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTP: HTTPConfig{
			Addr: getenv("HTTP_ADDR", ":8080"),
		},
		Postgres: PostgresConfig{
			Host:     getenv("POSTGRES_HOST", "localhost"),
			Port:     getenv("POSTGRES_PORT", "5432"),
			User:     getenv("POSTGRES_USER", "pgres"),
			Password: getenv("POSTGRES_PASSWORD", "pgres"),
			Name:     getenv("POSTGRES_DB", "pgres"),
			SSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
		},
		Catalog: CatalogConfig{
			BaseURL: getenv("API_URL", "https://api.themoviedb.org/3"),
			APIKey:  getenv("API_KEY", ""),
		},
		Auth: AuthConfig{
			JWTSecret:   getenv("SECRET_KEY", "dev-secret-change-me"),
			JWTIssuer:   getenv("JWT_ISSUER", "movielist"),
			JWTDuration: time.Duration(getenvInt("JWT_TTL_HOURS", 3)) * time.Hour,
		},
		LogLevel: getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return n
}
