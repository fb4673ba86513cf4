package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/internal/service"
	"github.com/pageza/sofregit/backend/internal/store"
)

// Services are the dependencies of the HTTP handlers.
type Services struct {
	Auth     service.IAuthService
	Recipes  service.IRecipeService
	Profiles service.IProfileService
	// Files is set when images are kept in process memory and must be
	// served by the API itself.
	Files  *store.MemoryObjectStore
	Logger *zap.Logger
}

// SetupAPI registers every route on router.
func SetupAPI(router *gin.Engine, svc Services) {
	authHandler := NewAuthHandler(svc.Auth, svc.Logger)
	recipeHandler := NewRecipeHandler(svc.Recipes, svc.Logger)
	profileHandler := NewProfileHandler(svc.Profiles, svc.Logger)

	// signing out through either control drops every form of the client
	authHandler.onSignOut = func(clientID string) {
		profileHandler.forms.Forget(clientID)
		svc.Recipes.ReleaseForms(clientID)
	}
	profileHandler.onSignOut = func(clientID string) {
		authHandler.overlays.Forget(clientID)
		svc.Recipes.ReleaseForms(clientID)
	}

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1, svc.Auth)
		profileHandler.RegisterRoutes(v1, svc.Auth)
	}

	if svc.Files != nil {
		NewFileHandler(svc.Files).RegisterRoutes(router)
	}
}
