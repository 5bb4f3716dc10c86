package config

import (
	"os"
	"strconv"

	"tapminer/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	BotToken    string
	BotUsername string
	JWTSecret   string
	DevMode     bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Action limits
	TapRateLimit  int // tap/purchase/claim requests per window per player
	TapRateWindow int // seconds
	MaxTapBatch   int // largest accepted tap batch per request
}

// Load reads configuration from environment (.env honored for local runs).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		logger.Fatal("BOT_TOKEN is not set")
	}

	botUsername := os.Getenv("BOT_USERNAME")
	if botUsername == "" {
		botUsername = "TapMinerBot"
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

	tapRateLimit := 120 // mutations per window per player
	if v := os.Getenv("TAP_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tapRateLimit = n
		}
	}

	tapRateWindow := 60 // seconds
	if v := os.Getenv("TAP_RATE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tapRateWindow = n
		}
	}

	maxTapBatch := 500
	if v := os.Getenv("MAX_TAP_BATCH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxTapBatch = n
		}
	}

	return &Config{
		AppPort:       port,
		DatabaseURL:   dbURL,
		BotToken:      botToken,
		BotUsername:   botUsername,
		JWTSecret:     jwtSecret,
		DevMode:       os.Getenv("DEV_MODE") == "true",
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		TapRateLimit:  tapRateLimit,
		TapRateWindow: tapRateWindow,
		MaxTapBatch:   maxTapBatch,
	}
}
