package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	APIBaseURL       string
	Port             string
	SessionBackend   string
	SessionTTL       time.Duration
	RedisAddr        string
	PaymentPublicKey string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		APIBaseURL:       getEnvOrDefault("API_BASE_URL", ""),
		Port:             getEnvOrDefault("PORT", "3000"),
		SessionBackend:   getEnvOrDefault("SESSION_BACKEND", "cookie"),
		SessionTTL:       getDurationEnv("SESSION_TTL", 72, time.Hour),
		RedisAddr:        getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		PaymentPublicKey: getEnvOrDefault("PAYMENT_PUBLIC_KEY", ""),
	}
	if AppEnv.APIBaseURL == "" {
		log.Fatal("[CONFIG] [ERROR] API_BASE_URL is required")
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
