package service

import (
	"context"

	"github.com/pageza/sofregit/backend/internal/form"
	"github.com/pageza/sofregit/backend/internal/model"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, clientID string, in RegisterInput) (string, *model.User, error)
	SignIn(ctx context.Context, clientID, email, password string) (string, *model.User, error)
	SignOut(ctx context.Context, clientID string) error
	UpdateDisplayName(ctx context.Context, sess *model.Session, name string) error
	UpdateEmail(ctx context.Context, sess *model.Session, email string) error
	State(ctx context.Context, clientID string) (model.AuthState, error)
	Watch(ctx context.Context, clientID string) (<-chan model.AuthState, func(), error)
	ResolveToken(ctx context.Context, token string) (*model.Session, error)
	ResolveClient(ctx context.Context, clientID string) (*model.Session, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	Submit(ctx context.Context, sess *model.Session, sub Submission) (*model.Recipe, error)
	SubmitForm(ctx context.Context, sess *model.Session, sub Submission) (form.State, *model.Recipe, error)
	FormState(clientID string) form.State
	ReleaseForms(clientID string)
	ListNewestFirst(ctx context.Context) []model.Recipe
	ListByOwner(ctx context.Context, ownerID string) ([]model.Recipe, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	View(ctx context.Context, sess *model.Session) (*ProfileView, error)
	Watch(ctx context.Context, clientID string, emit func(ProfileView) error) error
	Update(ctx context.Context, sess *model.Session, name, email string) (string, error)
	SignOut(ctx context.Context, clientID string) string
}
