package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	DBUrl       string
	JWTSecret   string
	ServerPort  string
	Timezone    string
	CORSOrigins []string

	// Client side of the completion workflow.
	BackofficeURL     string
	BackofficeToken   string
	BackofficeTimeout time.Duration
	RedisAddr         string
	SagaTTL           time.Duration
}

// Load reads an optional .env file, then the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:         getEnv("APP_ENV", "dev"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", "changeme"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Timezone:    getEnv("SALON_TIMEZONE", "America/Sao_Paulo"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),

		BackofficeURL:     getEnv("BACKOFFICE_URL", "http://localhost:8080/api"),
		BackofficeToken:   getEnv("BACKOFFICE_TOKEN", ""),
		BackofficeTimeout: getDuration("BACKOFFICE_TIMEOUT", 15*time.Second),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		SagaTTL:           getDuration("SAGA_TTL", 7*24*time.Hour),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

// InMemory reports whether the backend runs without Postgres.
func (c *Config) InMemory() bool {
	return c.DBUrl == ""
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}
