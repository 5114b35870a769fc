package config

import (
	"os"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	JWTDuration time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	duration := 24 * time.Hour
	if v := os.Getenv("JWT_DURATION"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			duration = parsed
		}
	}

	return Config{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTDuration: duration,
	}
}
