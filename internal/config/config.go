package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageLocal    = "local"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	App         AppConfig
	JWT         JWTConfig
	OpenAI      OpenAIConfig
	Aggregation AggregationConfig
	Storage     StorageConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Cron        CronConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	CORSOrigins []string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

type OpenAIConfig struct {
	APIKey          string
	BaseURL         string
	ChatModel       string
	TranscribeModel string
	Timeout         time.Duration
	MaxRetries      uint64
	DemoDelay       time.Duration
}

type AggregationConfig struct {
	AITimeout time.Duration
}

type StorageConfig struct {
	Backend  string
	BasePath string
	BaseURL  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled  bool
	MaxItems int64
}

type CronConfig struct {
	DigestInterval time.Duration
	JobTimeout     time.Duration
}

// Load reads .env when present, then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var (
		config = &Config{}
		err    error
		errs   []error
	)

	intVar := func(key, fallback string) int {
		v, convErr := strconv.Atoi(getEnv(key, fallback))
		if convErr != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, convErr))
		}
		return v
	}
	durationVar := func(key, fallback string) time.Duration {
		v, parseErr := time.ParseDuration(getEnv(key, fallback))
		if parseErr != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, parseErr))
		}
		return v
	}
	boolVar := func(key, fallback string) bool {
		v, parseErr := strconv.ParseBool(getEnv(key, fallback))
		if parseErr != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, parseErr))
		}
		return v
	}

	// Application configuration
	config.App = AppConfig{
		Port:        intVar("APP_PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnvSlice("APP_CORS_ORIGINS"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: durationVar("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	// OpenAI configuration. The key is optional; endpoints needing it answer 503.
	config.OpenAI = OpenAIConfig{
		APIKey:          getEnv("OPENAI_API_KEY", ""),
		BaseURL:         getEnv("OPENAI_BASE_URL", ""),
		ChatModel:       getEnv("OPENAI_CHAT_MODEL", "gpt-4o"),
		TranscribeModel: getEnv("OPENAI_TRANSCRIBE_MODEL", "whisper-1"),
		Timeout:         durationVar("OPENAI_TIMEOUT", "60s"),
		MaxRetries:      uint64(intVar("OPENAI_MAX_RETRIES", "0")),
		DemoDelay:       durationVar("TRANSCRIBE_DEMO_DELAY", "1500ms"),
	}

	config.Aggregation = AggregationConfig{
		AITimeout: durationVar("AGGREGATION_AI_TIMEOUT", "20s"),
	}

	config.Storage = StorageConfig{
		Backend:  strings.ToLower(getEnv("STORAGE_BACKEND", StorageMemory)),
		BasePath: getEnv("STORAGE_BASE_PATH", "./data"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
	}

	// Database configuration, used by the postgres backend
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     intVar("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "lastnext24"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(intVar("DB_MAX_CONNS", "10")),
	}

	// Redis configuration, used by the redis backend
	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       intVar("REDIS_DB", "0"),
	}

	config.Cache = CacheConfig{
		Enabled:  boolVar("CACHE_ENABLED", "true"),
		MaxItems: int64(intVar("CACHE_MAX_ITEMS", "1000")),
	}

	config.Cron = CronConfig{
		DigestInterval: durationVar("DIGEST_INTERVAL", "1h"),
		JobTimeout:     durationVar("CRON_JOB_TIMEOUT", "1m"),
	}

	if err = errors.Join(errs...); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}

	switch c.Storage.Backend {
	case StorageMemory:
	case StorageLocal:
		if c.Storage.BasePath == "" {
			return fmt.Errorf("STORAGE_BASE_PATH is required for the local backend")
		}
	case StoragePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres backend")
		}
	case StorageRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.Storage.Backend)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto slog, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
