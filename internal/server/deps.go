package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/sofregit/backend/config"
	"github.com/pageza/sofregit/backend/internal/database"
	"github.com/pageza/sofregit/backend/internal/store"
)

// Deps are the backend clients the server runs on.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Mongo    *mongo.Client
	Recipes  store.RecipeStore
	Objects  store.ObjectStore
	Sessions store.SessionStore
}

// Close releases every connection held by d.
func (d *Deps) Close(ctx context.Context) error {
	var errs []error
	if d.Mongo != nil {
		errs = append(errs, d.Mongo.Disconnect(ctx))
	}
	if d.Redis != nil {
		errs = append(errs, d.Redis.Close())
	}
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

// NewDeps connects to the backends selected by cfg.
func NewDeps(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Deps, error) {
	deps := &Deps{}
	fail := func(err error) (*Deps, error) {
		_ = deps.Close(context.Background())
		return nil, err
	}

	if cfg.DBDriver == "postgres" {
		if err := database.WaitForPostgres(ctx, cfg.PostgresDSN(), 10, 2*time.Second); err != nil {
			return fail(err)
		}
	}
	db, err := database.New(cfg, logger)
	if err != nil {
		return fail(err)
	}
	deps.DB = db
	if err := database.Migrate(db); err != nil {
		return fail(err)
	}

	rdb, err := database.NewRedisClient(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	deps.Redis = rdb
	if rdb != nil {
		deps.Sessions = store.NewRedisSessionStore(rdb, cfg.SessionTTL)
	} else {
		logger.Warn("redis not configured, keeping sessions in memory")
		deps.Sessions = store.NewMemorySessionStore(cfg.SessionTTL)
	}

	switch cfg.DocumentDriver {
	case "mongo":
		client, mdb, err := database.NewMongoDatabase(ctx, cfg, logger)
		if err != nil {
			return fail(err)
		}
		deps.Mongo = client
		recipes := store.NewMongoRecipeStore(mdb)
		if err := recipes.EnsureIndexes(ctx); err != nil {
			return fail(err)
		}
		deps.Recipes = recipes
	default:
		deps.Recipes = store.NewGormRecipeStore(db)
	}

	switch cfg.StorageDriver {
	case "s3":
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return fail(err)
		}
		deps.Objects = store.NewS3ObjectStore(s3cfg, cfg.S3Presign, cfg.ObjectURLExpiry)
	case "minio":
		objects, err := store.NewMinioObjectStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
			cfg.MinioBucket, cfg.MinioUseSSL, cfg.ObjectURLExpiry)
		if err != nil {
			return fail(err)
		}
		deps.Objects = objects
	case "memory":
		deps.Objects = store.NewMemoryObjectStore(cfg.PublicURL)
	default:
		return fail(fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver))
	}

	return deps, nil
}
