package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	BodyLimitBytes        int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. Redis backs the rate-limit
// counters; when Addr is empty the limiters fall back to process-local state.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// CORSConfig restricts cross-origin access to the listed origins.
type CORSConfig struct {
	AllowedOrigins string
}

// RateLimitConfig holds the three abuse-control windows: one for all API
// traffic, one for user creation and one for message creation.
type RateLimitConfig struct {
	GlobalLimit                int
	GlobalWindowSeconds        int
	UserCreateLimit            int
	UserCreateWindowSeconds    int
	MessageCreateLimit         int
	MessageCreateWindowSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "anonqa-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			BodyLimitBytes:        getEnvAsInt("HTTP_BODY_LIMIT_BYTES", 1024),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		},
		RateLimit: RateLimitConfig{
			GlobalLimit:                getEnvAsInt("RATE_LIMIT_GLOBAL_MAX", 100),
			GlobalWindowSeconds:        getEnvAsInt("RATE_LIMIT_GLOBAL_WINDOW_SECONDS", 900),
			UserCreateLimit:            getEnvAsInt("RATE_LIMIT_USER_CREATE_MAX", 50),
			UserCreateWindowSeconds:    getEnvAsInt("RATE_LIMIT_USER_CREATE_WINDOW_SECONDS", 3600),
			MessageCreateLimit:         getEnvAsInt("RATE_LIMIT_MESSAGE_CREATE_MAX", 10),
			MessageCreateWindowSeconds: getEnvAsInt("RATE_LIMIT_MESSAGE_CREATE_WINDOW_SECONDS", 60),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// IsDevelopment reports whether the service runs in development mode.
// Development mode exposes full error detail in 5xx responses.
func (a AppConfig) IsDevelopment() bool {
	return a.Env == "development"
}

// GlobalWindow returns the all-traffic limiter window.
func (r RateLimitConfig) GlobalWindow() time.Duration {
	return time.Duration(r.GlobalWindowSeconds) * time.Second
}

// UserCreateWindow returns the user-creation limiter window.
func (r RateLimitConfig) UserCreateWindow() time.Duration {
	return time.Duration(r.UserCreateWindowSeconds) * time.Second
}

// MessageCreateWindow returns the message-creation limiter window.
func (r RateLimitConfig) MessageCreateWindow() time.Duration {
	return time.Duration(r.MessageCreateWindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
