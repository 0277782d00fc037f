package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv          string
	LogLevel        string
	ServerPort      string
	DBDriver        string
	DatabaseDSN     string
	ResetDB         bool
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	CacheTTL        time.Duration
	WishCacheTTL    time.Duration
	JWTSecret       string
	JWTTTL          time.Duration
	CORSOrigins     []string
	AuthRateLimit   float64
	ShutdownTimeout time.Duration
	SwaggerHost     string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseDSN:     getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/giftregistry?charset=utf8mb4&parseTime=True&loc=Local"),
		ResetDB:         getEnvBool("RESET_DB", false),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		CacheTTL:        getEnvDuration("CACHE_TTL", 5*time.Minute),
		WishCacheTTL:    getEnvDuration("WISH_CACHE_TTL", 30*time.Second),
		JWTSecret:       getEnv("JWT_SECRET", "change-me"),
		JWTTTL:          getEnvDuration("JWT_TTL", 24*time.Hour),
		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"*"}),
		AuthRateLimit:   getEnvFloat("AUTH_RATE_LIMIT", 5),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
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

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
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

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
