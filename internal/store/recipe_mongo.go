package store

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pageza/sofregit/backend/internal/model"
)

// MongoRecipeStore keeps recipe documents in a MongoDB collection.
type MongoRecipeStore struct {
	col *mongo.Collection
}

func NewMongoRecipeStore(db *mongo.Database) *MongoRecipeStore {
	return &MongoRecipeStore{col: db.Collection(RecipeCollection)}
}

// EnsureIndexes creates the indexes used by the listing queries.
func (s *MongoRecipeStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("mongo indexes: %w", err)
	}
	return nil
}

func (s *MongoRecipeStore) Create(ctx context.Context, r *model.Recipe) error {
	if r.ID == "" {
		r.ID = ulid.Make().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if _, err := s.col.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	return nil
}

func (s *MongoRecipeStore) ListNewestFirst(ctx context.Context) ([]model.Recipe, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoRecipeStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Recipe, error) {
	return s.find(ctx, bson.M{"userId": ownerID})
}

func (s *MongoRecipeStore) find(ctx context.Context, filter bson.M) ([]model.Recipe, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cur.Close(ctx)

	recipes := []model.Recipe{}
	if err := cur.All(ctx, &recipes); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}
	return recipes, nil
}
