package config

import (
	"os"
	"strconv"
)

type Config struct {
	Env          string
	HTTPPort     string
	DatabaseURL  string // empty -> in-memory store
	JWTSecret    string
	JWTIssuer    string
	CollectorURL string
	RateRPS      int

	PopularWindowDays int
	PopularLimit      int
}

func Load() Config {
	return Config{
		Env:          get("APP_ENV", "dev"),
		HTTPPort:     get("HTTP_PORT", "8080"),
		DatabaseURL:  get("DATABASE_URL", ""),
		JWTSecret:    get("JWT_SECRET", "changeme-secret"),
		JWTIssuer:    get("JWT_ISSUER", "coffee-order-backend"),
		CollectorURL: get("COLLECTOR_URL", ""),
		RateRPS:      getInt("RATE_RPS", 100),

		PopularWindowDays: getInt("POPULAR_WINDOW_DAYS", 7),
		PopularLimit:      getInt("POPULAR_LIMIT", 3),
	}
}

func get(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
