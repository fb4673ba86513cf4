package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "\n")
}

var (
	dbDrivers       = []string{"sqlite", "postgres"}
	documentDrivers = []string{"sql", "mongo"}
	storageDrivers  = []string{"memory", "s3", "minio"}
)

// ValidateConfig checks if the configuration meets the requirements for the given environment
func ValidateConfig(cfg *Config, environment Environment) error {
	var errs ValidationErrors
	require := func(field, value, msg string) {
		if value == "" {
			errs = append(errs, ValidationError{Field: field, Message: msg})
		}
	}
	oneOf := func(field, value string, allowed []string) bool {
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(allowed, ", "), value),
		})
		return false
	}

	require("SERVER_PORT", cfg.ServerPort, "is required")

	if oneOf("DB_DRIVER", cfg.DBDriver, dbDrivers) {
		switch cfg.DBDriver {
		case "postgres":
			require("DB_HOST", cfg.DBHost, "is required for postgres")
			require("DB_NAME", cfg.DBName, "is required for postgres")
			require("DB_USER", cfg.DBUser, "is required for postgres (db_user secret)")
			require("DB_PASSWORD", cfg.DBPassword, "is required for postgres (db_password secret)")
		case "sqlite":
			require("SQLITE_PATH", cfg.SQLitePath, "is required for sqlite")
		}
	}

	if oneOf("DOCUMENT_DRIVER", cfg.DocumentDriver, documentDrivers) && cfg.DocumentDriver == "mongo" {
		require("MONGO_URI", cfg.MongoURI, "is required for the mongo document store (mongo_uri secret)")
		require("MONGO_DB", cfg.MongoDatabase, "is required for the mongo document store")
	}

	if oneOf("STORAGE_DRIVER", cfg.StorageDriver, storageDrivers) {
		switch cfg.StorageDriver {
		case "s3":
			require("S3_BUCKET_NAME", cfg.S3BucketName, "is required for s3 storage")
		case "minio":
			require("MINIO_ENDPOINT", cfg.MinioEndpoint, "is required for minio storage")
			require("MINIO_ACCESS_KEY", cfg.MinioAccessKey, "is required for minio storage (minio_access_key secret)")
			require("MINIO_SECRET_KEY", cfg.MinioSecretKey, "is required for minio storage (minio_secret_key secret)")
			require("MINIO_BUCKET", cfg.MinioBucket, "is required for minio storage")
		case "memory":
			if environment == Production {
				errs = append(errs, ValidationError{Field: "STORAGE_DRIVER", Message: "memory storage is not allowed in production"})
			}
		}
	}

	if environment == CI {
		require("JWT_SECRET", cfg.JWTSecret, "environment variable is required in CI environment")
	} else {
		require("JWT_SECRET", cfg.JWTSecret, "jwt_secret secret is required")
	}
	if environment == Production && cfg.JWTSecret == DevelopmentJWTSecret {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "development secret used in production"})
	}

	if cfg.SessionTTL <= 0 {
		errs = append(errs, ValidationError{Field: "SESSION_TTL", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
