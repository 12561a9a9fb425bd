package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	ServerPort    string
	GroqAPIKey    string
	GroqAPIURL    string
	GroqModel     string
}

func Load() *Config {
	// Missing .env is fine, the runtime may provide env vars directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "mindclash"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-me"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		GroqAPIKey:    getEnv("GROQ_API_KEY", ""),
		GroqAPIURL:    getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1"),
		GroqModel:     getEnv("GROQ_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
