package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost         string   `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort         string   `env:"SERVER_PORT" envDefault:"8080"`
	PublicURL          string   `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`

	// Relational database (users, and recipes when DocumentDriver is "sql")
	DBDriver   string `env:"DB_DRIVER" envDefault:"sqlite"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"sofregit.db"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"sofregit"`
	DBSSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`

	// Document store for recipes: "sql" or "mongo"
	DocumentDriver string `env:"DOCUMENT_DRIVER" envDefault:"sql"`
	MongoURI       string `env:"MONGO_URI"`
	MongoDatabase  string `env:"MONGO_DB" envDefault:"sofregit"`

	// Redis configuration. Sessions and auth state fan-out fall back to
	// process memory when no Redis is configured.
	RedisURL      string `env:"REDIS_URL"`
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Object storage for recipe images: "memory", "s3" or "minio"
	StorageDriver   string        `env:"STORAGE_DRIVER" envDefault:"memory"`
	ObjectURLExpiry time.Duration `env:"OBJECT_URL_EXPIRY" envDefault:"168h"`
	S3BucketName    string        `env:"S3_BUCKET_NAME" envDefault:"sofregit-recipes"`
	AWSRegion       string        `env:"AWS_REGION" envDefault:"eu-west-1"`
	S3Presign       bool          `env:"S3_PRESIGN" envDefault:"false"`
	MinioEndpoint   string        `env:"MINIO_ENDPOINT"`
	MinioAccessKey  string        `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey  string        `env:"MINIO_SECRET_KEY"`
	MinioBucket     string        `env:"MINIO_BUCKET" envDefault:"sofregit-recipes"`
	MinioUseSSL     bool          `env:"MINIO_USE_SSL" envDefault:"false"`

	// Auth configuration
	JWTSecret  string        `env:"JWT_SECRET"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`
}

// secretFields maps Docker secret file names onto the sensitive fields they fill.
func (c *Config) secretFields() map[string]*string {
	return map[string]*string{
		"db_user":          &c.DBUser,
		"db_password":      &c.DBPassword,
		"jwt_secret":       &c.JWTSecret,
		"redis_password":   &c.RedisPassword,
		"redis_url":        &c.RedisURL,
		"mongo_uri":        &c.MongoURI,
		"minio_access_key": &c.MinioAccessKey,
		"minio_secret_key": &c.MinioSecretKey,
	}
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	environment := GetEnvironment()
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Load configuration based on environment
	switch environment {
	case CI:
		// CI uses environment variables only
	case Development, Test:
		loadSecrets(cfg, false)
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = DevelopmentJWTSecret
		}
	case Production:
		loadSecrets(cfg, true)
	default:
		return nil, fmt.Errorf("unknown environment: %s", environment)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg, environment); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DevelopmentJWTSecret signs tokens outside production when no secret is provided.
const DevelopmentJWTSecret = "sofregit-development-secret"

// loadSecrets overlays Docker secrets onto cfg. Outside production a secret
// file only fills fields the environment left empty.
func loadSecrets(cfg *Config, override bool) {
	for name, field := range cfg.secretFields() {
		value := readSecret(name)
		if value == "" {
			continue
		}
		if override || *field == "" {
			*field = value
		}
	}
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

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN builds a keyword/value connection string understood by both
// lib/pq and the gorm postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisConfigured reports whether a Redis server was configured.
func (c *Config) RedisConfigured() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}
