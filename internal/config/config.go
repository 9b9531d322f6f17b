package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	DBDriver    string
	DatabaseDSN string

	SessionStore string
	RedisAddr    string
	RedisDB      int
	RedisPass    string

	SessionSecret     string
	SessionCookie     string
	CookieSecure      bool
	SessionTTL        time.Duration
	InactivityTimeout time.Duration

	LoginAttemptsPerMinute int

	Debug       bool
	SwaggerHost string
}

// Load reads an optional dotenv file and builds Config from environment with sensible defaults.
// Variables already present in the environment win over the file.
func Load() *Config {
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	driver := getEnv("DB_DRIVER", "mysql")
	return &Config{
		ServerPort:             getEnv("SERVER_PORT", "8080"),
		DBDriver:               driver,
		DatabaseDSN:            getEnv("DATABASE_DSN", buildDSN(driver)),
		SessionStore:           getEnv("SESSION_STORE", "memory"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		SessionSecret:          getEnv("SESSION_SECRET", "change-me"),
		SessionCookie:          getEnv("SESSION_COOKIE", "c2_session"),
		CookieSecure:           getEnvBool("COOKIE_SECURE", false),
		SessionTTL:             getEnvDuration("SESSION_TTL", 24*time.Hour),
		InactivityTimeout:      getEnvDuration("INACTIVITY_TIMEOUT", 30*time.Minute),
		LoginAttemptsPerMinute: getEnvInt("LOGIN_ATTEMPTS_PER_MINUTE", 10),
		Debug:                  getEnvBool("DEBUG", false),
		SwaggerHost:            os.Getenv("SWAGGER_HOST"),
	}
}

// buildDSN assembles a DSN from the discrete DB_* variables.
func buildDSN(driver string) string {
	host := getEnv("DB_HOST", "localhost")
	name := getEnv("DB_DATABASE", "c2_panel")
	user := getEnv("DB_USERNAME", "root")
	pass := os.Getenv("DB_PASSWORD")

	if driver == "postgres" {
		port := getEnv("DB_PORT", "5432")
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, name)
	}
	port := getEnv("DB_PORT", "3306")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC", user, pass, host, port, name)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
