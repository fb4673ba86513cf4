package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/internal/mocks"
	"github.com/pageza/sofregit/backend/internal/model"
	"github.com/pageza/sofregit/backend/internal/service"
)

func testSession() *model.Session {
	return &model.Session{
		ClientID: "client-1",
		User:     &model.User{ID: uuid.New(), Email: "anna@example.com", DisplayName: "Anna"},
	}
}

func tortilla() service.Submission {
	return service.Submission{
		Title:        "Tortilla",
		Ingredients:  "eggs, potato",
		Instructions: "fry",
		Type:         model.FoodMainCourse,
		Diet:         model.DietVegetarian,
	}
}

func TestSubmitWithoutImage(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)
	objects := new(mocks.MockObjectStore)
	svc := service.NewRecipeService(recipes, objects, zap.NewNop())
	sess := testSession()

	recipes.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Recipe) bool {
		return r.Title == "Tortilla" &&
			r.Ingredients == "eggs, potato" &&
			r.Instructions == "fry" &&
			r.Type == model.FoodMainCourse &&
			r.Diet == model.DietVegetarian &&
			r.ImageURL == "" &&
			r.UserID == sess.UserID() &&
			!r.CreatedAt.IsZero()
	})).Return(nil).Once()

	recipe, err := svc.Submit(context.Background(), sess, tortilla())
	require.NoError(t, err)
	assert.Equal(t, "", recipe.ImageURL)

	recipes.AssertExpectations(t)
	objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitUploadsImageBeforeCreating(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)
	objects := new(mocks.MockObjectStore)
	svc := service.NewRecipeService(recipes, objects, zap.NewNop())

	sub := tortilla()
	sub.Image = &service.ImageFile{Name: "tortilla.jpg", Size: 3, ContentType: "image/jpeg", Content: strings.NewReader("jpg")}

	mock.InOrder(
		objects.On("Upload", mock.Anything, "recipes/tortilla.jpg", sub.Image.Content, int64(3), "image/jpeg").Return(nil).Once(),
		objects.On("URL", mock.Anything, "recipes/tortilla.jpg").Return("https://cdn.example.com/recipes/tortilla.jpg", nil).Once(),
		recipes.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Recipe) bool {
			return r.ImageURL == "https://cdn.example.com/recipes/tortilla.jpg"
		})).Return(nil).Once(),
	)

	recipe, err := svc.Submit(context.Background(), testSession(), sub)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/recipes/tortilla.jpg", recipe.ImageURL)
	objects.AssertExpectations(t)
	recipes.AssertExpectations(t)
}

func TestSubmitFailuresCreateNoDocument(t *testing.T) {
	tests := []struct {
		name  string
		setup func(objects *mocks.MockObjectStore)
	}{
		{
			name: "upload fails",
			setup: func(objects *mocks.MockObjectStore) {
				objects.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("denied"))
			},
		},
		{
			name: "url fails",
			setup: func(objects *mocks.MockObjectStore) {
				objects.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
				objects.On("URL", mock.Anything, mock.Anything).Return("", errors.New("not found"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes := new(mocks.MockRecipeStore)
			objects := new(mocks.MockObjectStore)
			tt.setup(objects)
			svc := service.NewRecipeService(recipes, objects, zap.NewNop())

			sub := tortilla()
			sub.Image = &service.ImageFile{Name: "a.png", Size: 1, ContentType: "image/png", Content: strings.NewReader("x")}

			_, err := svc.Submit(context.Background(), testSession(), sub)
			assert.Error(t, err)
			recipes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitRequiresUser(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)
	objects := new(mocks.MockObjectStore)
	svc := service.NewRecipeService(recipes, objects, zap.NewNop())

	sub := tortilla()
	sub.Image = &service.ImageFile{Name: "a.png", Size: 1, ContentType: "image/png", Content: strings.NewReader("x")}

	_, err := svc.Submit(context.Background(), &model.Session{ClientID: "client-1"}, sub)
	assert.ErrorIs(t, err, service.ErrNotAuthenticated)
	objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	recipes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitRejectsUnknownTypes(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)
	objects := new(mocks.MockObjectStore)
	svc := service.NewRecipeService(recipes, objects, zap.NewNop())

	sub := tortilla()
	sub.Type = model.FoodType("pizza")
	sub.Image = &service.ImageFile{Name: "a.png", Size: 1, ContentType: "image/png", Content: strings.NewReader("x")}

	_, err := svc.Submit(context.Background(), testSession(), sub)
	assert.ErrorIs(t, err, service.ErrInvalidRecipe)
	objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	recipes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitFormMessages(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)
	svc := service.NewRecipeService(recipes, new(mocks.MockObjectStore), zap.NewNop())
	sess := testSession()

	recipes.On("Create", mock.Anything, mock.Anything).Return(errors.New("write failed")).Once()
	state, created, err := svc.SubmitForm(context.Background(), sess, tortilla())
	assert.Error(t, err)
	assert.Nil(t, created)
	assert.Equal(t, service.RecipeFailedMessage, state.Message)
	assert.False(t, state.Submitting)

	recipes.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	state, created, err = svc.SubmitForm(context.Background(), sess, tortilla())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, service.RecipeCreatedMessage, state.Message)
	assert.Equal(t, state, svc.FormState("client-1"))
	assert.Empty(t, svc.FormState("client-2").Message)
}

func TestSubmitFormDisabledWhileRunning(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)
	svc := service.NewRecipeService(recipes, new(mocks.MockObjectStore), zap.NewNop())
	sess := testSession()

	started := make(chan struct{})
	release := make(chan struct{})
	recipes.On("Create", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(nil).Once()

	done := make(chan error)
	go func() {
		_, _, err := svc.SubmitForm(context.Background(), sess, tortilla())
		done <- err
	}()

	<-started
	assert.True(t, svc.FormState(sess.ClientID).Submitting)
	_, _, err := svc.SubmitForm(context.Background(), sess, tortilla())
	assert.ErrorIs(t, err, service.ErrSubmissionInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, svc.FormState(sess.ClientID).Submitting)
	recipes.AssertNumberOfCalls(t, "Create", 1)
}

func TestListNewestFirstSwallowsErrors(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)
	svc := service.NewRecipeService(recipes, new(mocks.MockObjectStore), zap.NewNop())

	recipes.On("ListNewestFirst", mock.Anything).Return(nil, errors.New("unavailable")).Once()
	list := svc.ListNewestFirst(context.Background())
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
