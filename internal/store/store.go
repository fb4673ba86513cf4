// Package store holds the backend clients the workflows talk to: the recipe
// document store, binary object storage and the client session bindings.
package store

import (
	"context"
	"errors"
	"io"

	"github.com/pageza/sofregit/backend/internal/model"
)

// RecipeCollection is the name of the recipe document collection.
const RecipeCollection = "recipes"

var (
	// ErrObjectNotFound is returned when a key has no stored object.
	ErrObjectNotFound = errors.New("object not found")
)

// RecipeStore persists recipe documents. Recipes are created once and never
// updated or deleted.
type RecipeStore interface {
	// Create stores r, assigning an ID when r.ID is empty.
	Create(ctx context.Context, r *model.Recipe) error
	// ListNewestFirst returns every recipe ordered by creation time, newest first.
	ListNewestFirst(ctx context.Context) ([]model.Recipe, error)
	// ListByOwner returns the recipes whose owner equals ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Recipe, error)
}

// ObjectStore stores binary objects under string keys.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// URL returns a URL that downloads the object stored under key.
	URL(ctx context.Context, key string) (string, error)
}

// SessionStore binds client session keys to user IDs.
type SessionStore interface {
	Bind(ctx context.Context, clientID, userID string) error
	// Lookup returns the user bound to clientID, or "" when there is none.
	Lookup(ctx context.Context, clientID string) (string, error)
	Unbind(ctx context.Context, clientID string) error
}

// RecipeImageKey is the object key of a recipe image. Keys are not
// uniquified: uploading a file with the same name replaces the object.
func RecipeImageKey(fileName string) string {
	return "recipes/" + fileName
}
