package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/internal/form"
	"github.com/pageza/sofregit/backend/internal/model"
	"github.com/pageza/sofregit/backend/internal/store"
)

const recipeFormName = "recipe"

// ImageFile is the optional image attached to a recipe submission.
type ImageFile struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// Submission is a validated recipe form.
type Submission struct {
	Title        string
	Ingredients  string
	Instructions string
	Type         model.FoodType
	Diet         model.DietType
	Image        *ImageFile
}

type RecipeService struct {
	recipes store.RecipeStore
	objects store.ObjectStore
	forms   *form.Registry[*form.Controller]
	now     func() time.Time
	logger  *zap.Logger
}

func NewRecipeService(recipes store.RecipeStore, objects store.ObjectStore, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		recipes: recipes,
		objects: objects,
		forms: form.NewRegistry(func(func()) *form.Controller {
			return form.NewController()
		}, (*form.Controller).Idle, form.DefaultIdleTTL),
		now:    time.Now,
		logger: logger.Named("recipe"),
	}
}

// Submit uploads the image, when there is one, and then creates the recipe
// document owned by the session user. An image uploaded before a failing
// document write is left in place.
func (s *RecipeService) Submit(ctx context.Context, sess *model.Session, sub Submission) (*model.Recipe, error) {
	if !sess.SignedIn() {
		return nil, ErrNotAuthenticated
	}
	if !sub.Type.Valid() || !sub.Diet.Valid() {
		return nil, fmt.Errorf("%w: type %q, diet %q", ErrInvalidRecipe, sub.Type, sub.Diet)
	}

	imageURL := ""
	if sub.Image != nil {
		key := store.RecipeImageKey(sub.Image.Name)
		if err := s.objects.Upload(ctx, key, sub.Image.Content, sub.Image.Size, sub.Image.ContentType); err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		url, err := s.objects.URL(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("image url: %w", err)
		}
		imageURL = url
	}

	recipe := &model.Recipe{
		Title:        sub.Title,
		Ingredients:  sub.Ingredients,
		Instructions: sub.Instructions,
		Type:         sub.Type,
		Diet:         sub.Diet,
		ImageURL:     imageURL,
		UserID:       sess.UserID(),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	s.logger.Info("recipe created",
		zap.String("recipe_id", recipe.ID),
		zap.String("user_id", recipe.UserID),
		zap.Bool("image", imageURL != ""))
	return recipe, nil
}

// SubmitForm runs Submit behind the recipe form of the session's client.
// Failures are logged and reported with one generic message.
func (s *RecipeService) SubmitForm(ctx context.Context, sess *model.Session, sub Submission) (form.State, *model.Recipe, error) {
	var created *model.Recipe
	ctrl := s.forms.Get(form.Key(sess.ClientID, recipeFormName))
	state, err := ctrl.Submit(ctx, func(ctx context.Context) (string, error) {
		recipe, err := s.Submit(ctx, sess, sub)
		if err != nil {
			s.logger.Error("failed to create recipe", zap.String("client_id", sess.ClientID), zap.Error(err))
			return RecipeFailedMessage, err
		}
		created = recipe
		return RecipeCreatedMessage, nil
	})
	return state, created, err
}

// FormState returns the recipe form state of clientID.
func (s *RecipeService) FormState(clientID string) form.State {
	if ctrl, ok := s.forms.Peek(form.Key(clientID, recipeFormName)); ok {
		return ctrl.State()
	}
	return form.State{}
}

// ReleaseForms drops the idle recipe form of clientID.
func (s *RecipeService) ReleaseForms(clientID string) {
	s.forms.Forget(clientID)
}

// ListNewestFirst returns all recipes, newest first. A failed query is
// logged and reads as an empty list.
func (s *RecipeService) ListNewestFirst(ctx context.Context) []model.Recipe {
	recipes, err := s.recipes.ListNewestFirst(ctx)
	if err != nil {
		s.logger.Error("failed to list recipes", zap.Error(err))
		return []model.Recipe{}
	}
	if recipes == nil {
		return []model.Recipe{}
	}
	return recipes
}

func (s *RecipeService) ListByOwner(ctx context.Context, ownerID string) ([]model.Recipe, error) {
	recipes, err := s.recipes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	return recipes, nil
}
