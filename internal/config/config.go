package config

import (
	"os"
	"strconv"

	"taskboard/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	DatabaseURL   string
	SessionSecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthRateLimit  int
	AuthRateWindow int
}

// Load reads configuration from the environment. Missing required values
// are fatal at startup, never at request time.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		logger.Fatal("SESSION_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			authRateLimit = n
		}
	}

	authRateWindow := 60
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			authRateWindow = n
		}
	}

	return &Config{
		AppPort:        port,
		DatabaseURL:    dbURL,
		SessionSecret:  sessionSecret,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		AuthRateLimit:  authRateLimit,
		AuthRateWindow: authRateWindow,
	}
}
