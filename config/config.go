package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Logging configuration
	LogLevel  string
	LogFormat string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Image storage configuration
	ImageStorage    string
	UploadDir       string
	UploadsPrefix   string
	S3Bucket        string
	S3Region        string
	S3PublicBaseURL string

	// Orders
	OrderTTL time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI using environment variables only
func loadCIConfig(cfg *Config) {
	loadFromEnv(cfg, func(name, key, def string) string {
		return getEnv(key, def)
	})
}

// loadDevConfig loads an optional .env file and then reads the environment,
// falling back to Docker secrets for sensitive values
func loadDevConfig(cfg *Config) error {
	envFile := getEnv("ENV_FILE", ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	loadFromEnv(cfg, func(name, key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := readSecret(name); v != "" {
			return v
		}
		return def
	})
	return nil
}

// loadProdConfig prefers Docker secrets and falls back to environment variables
func loadProdConfig(cfg *Config) {
	loadFromEnv(cfg, func(name, key, def string) string {
		if v := readSecret(name); v != "" {
			return v
		}
		return getEnv(key, def)
	})
}

// loadFromEnv fills cfg using lookup, which resolves a value from its secret
// name, its environment key and a default.
func loadFromEnv(cfg *Config, lookup func(name, key, def string) string) {
	cfg.ServerPort = lookup("server_port", "SERVER_PORT", "8080")
	cfg.ServerHost = lookup("server_host", "SERVER_HOST", "0.0.0.0")
	cfg.CORSOrigins = splitList(lookup("cors_origins", "CORS_ORIGINS", "http://localhost:5173"))

	cfg.LogLevel = lookup("log_level", "LOG_LEVEL", "info")
	cfg.LogFormat = lookup("log_format", "LOG_FORMAT", defaultLogFormat())

	cfg.DBDriver = strings.ToLower(lookup("db_driver", "DB_DRIVER", DriverPostgres))
	cfg.DBHost = lookup("db_host", "DB_HOST", "localhost")
	cfg.DBPort = lookup("db_port", "DB_PORT", "5432")
	cfg.DBUser = lookup("db_user", "DB_USER", "postgres")
	cfg.DBPassword = lookup("db_password", "DB_PASSWORD", "")
	cfg.DBName = lookup("db_name", "DB_NAME", "tomato")
	cfg.DBSSLMode = lookup("db_ssl_mode", "DB_SSL_MODE", "disable")
	cfg.SQLitePath = lookup("sqlite_path", "SQLITE_PATH", "tomato.db")

	cfg.RedisHost = lookup("redis_host", "REDIS_HOST", "localhost")
	cfg.RedisPort = lookup("redis_port", "REDIS_PORT", "6379")
	cfg.RedisPassword = lookup("redis_password", "REDIS_PASSWORD", "")
	cfg.RedisURL = lookup("redis_url", "REDIS_URL", "")
	cfg.RedisDB, _ = strconv.Atoi(lookup("redis_db", "REDIS_DB", "0"))

	cfg.ImageStorage = strings.ToLower(lookup("image_storage", "IMAGE_STORAGE", StorageLocal))
	cfg.UploadDir = lookup("upload_dir", "UPLOAD_DIR", "uploads")
	cfg.UploadsPrefix = lookup("uploads_prefix", "UPLOADS_PREFIX", "/uploads")
	cfg.S3Bucket = lookup("s3_bucket_name", "S3_BUCKET_NAME", "")
	cfg.S3Region = lookup("aws_region", "AWS_REGION", "")
	cfg.S3PublicBaseURL = lookup("s3_public_base_url", "S3_PUBLIC_BASE_URL", "")

	ttl, err := time.ParseDuration(lookup("order_ttl", "ORDER_TTL", "24h"))
	if err != nil {
		ttl = 0
	}
	cfg.OrderTTL = ttl
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN returns the lib/pq connection string
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func defaultLogFormat() string {
	if IsProduction() {
		return "json"
	}
	return "text"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
