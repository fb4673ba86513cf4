package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV", "SECRETS_DIR", "DB_DRIVER", "DB_USER", "DB_PASSWORD", "DB_HOST",
		"DOCUMENT_DRIVER", "MONGO_URI", "STORAGE_DRIVER", "MINIO_ENDPOINT",
		"MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "JWT_SECRET", "SESSION_TTL",
		"CORS_ALLOWED_ORIGINS", "REDIS_URL", "REDIS_HOST",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	// Point secrets at an empty directory so the host's /run/secrets is never read.
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "sql", cfg.DocumentDriver)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, DevelopmentJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RedisConfigured())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.True(t, cfg.RedisConfigured())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "host=db port=5432 user=postgres password=postgres dbname=sofregit sslmode=disable", cfg.PostgresDSN())
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db_password"), []byte("pw"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-secret", cfg.JWTSecret)
	assert.Equal(t, "pw", cfg.DBPassword)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		return &Config{
			ServerPort:     "8080",
			DBDriver:       "sqlite",
			SQLitePath:     "test.db",
			DocumentDriver: "sql",
			StorageDriver:  "memory",
			JWTSecret:      "secret",
			SessionTTL:     time.Hour,
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateConfig(base(), Development))
	})

	t.Run("unknown drivers", func(t *testing.T) {
		cfg := base()
		cfg.DBDriver = "mysql"
		cfg.StorageDriver = "ftp"
		err := ValidateConfig(cfg, Development)
		require.Error(t, err)
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})

	t.Run("mongo needs uri", func(t *testing.T) {
		cfg := base()
		cfg.DocumentDriver = "mongo"
		cfg.MongoDatabase = "sofregit"
		assert.ErrorContains(t, ValidateConfig(cfg, Development), "MONGO_URI")
	})

	t.Run("minio needs credentials", func(t *testing.T) {
		cfg := base()
		cfg.StorageDriver = "minio"
		cfg.MinioEndpoint = "minio:9000"
		cfg.MinioBucket = "recipes"
		err := ValidateConfig(cfg, Development)
		assert.ErrorContains(t, err, "MINIO_ACCESS_KEY")
		assert.ErrorContains(t, err, "MINIO_SECRET_KEY")
	})

	t.Run("production rejects memory storage and dev secret", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = DevelopmentJWTSecret
		err := ValidateConfig(cfg, Production)
		assert.ErrorContains(t, err, "memory storage is not allowed")
		assert.ErrorContains(t, err, "development secret")
	})
}

func TestS3PublicURLEscapesKey(t *testing.T) {
	s3cfg := &S3Config{BucketName: "sofregit-recipes", Region: "eu-west-1"}

	assert.Equal(t, "https://sofregit-recipes.s3.eu-west-1.amazonaws.com/recipes/tortilla.jpg",
		s3cfg.PublicURL("recipes/tortilla.jpg"))
	assert.Equal(t, "https://sofregit-recipes.s3.eu-west-1.amazonaws.com/recipes/pa%20amb%20tom%C3%A0quet%20%231%3F.png",
		s3cfg.PublicURL("recipes/pa amb tomàquet #1?.png"))
}
