package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/internal/mocks"
	"github.com/pageza/sofregit/backend/internal/model"
	"github.com/pageza/sofregit/backend/internal/service"
	"github.com/pageza/sofregit/backend/internal/store"
	"github.com/pageza/sofregit/backend/internal/testhelpers"
)

func TestProfileUpdateSkipsUnchangedEmail(t *testing.T) {
	auth := new(mocks.MockAuthService)
	svc := service.NewProfileService(auth, new(mocks.MockRecipeService), zap.NewNop())
	sess := testSession()

	auth.On("UpdateDisplayName", mock.Anything, sess, "Anna P.").Return(nil).Once()

	msg, err := svc.Update(context.Background(), sess, "Anna P.", "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, service.ProfileUpdatedMessage, msg)
	auth.AssertNotCalled(t, "UpdateEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileUpdateKeepsNameWhenEmailFails(t *testing.T) {
	auth := new(mocks.MockAuthService)
	svc := service.NewProfileService(auth, new(mocks.MockRecipeService), zap.NewNop())
	sess := testSession()

	mock.InOrder(
		auth.On("UpdateDisplayName", mock.Anything, sess, "Anna P.").Return(nil).Once(),
		auth.On("UpdateEmail", mock.Anything, sess, "pau@example.com").Return(service.ErrEmailTaken).Once(),
	)

	msg, err := svc.Update(context.Background(), sess, "Anna P.", "pau@example.com")
	assert.ErrorIs(t, err, service.ErrEmailTaken)
	assert.Equal(t, service.ProfileFailedMessage+"email already in use", msg)
	auth.AssertExpectations(t)
}

func TestProfileUpdateNameFailureStops(t *testing.T) {
	auth := new(mocks.MockAuthService)
	svc := service.NewProfileService(auth, new(mocks.MockRecipeService), zap.NewNop())
	sess := testSession()

	auth.On("UpdateDisplayName", mock.Anything, sess, "Anna P.").Return(errors.New("db down")).Once()

	msg, err := svc.Update(context.Background(), sess, "Anna P.", "new@example.com")
	assert.Error(t, err)
	assert.Equal(t, service.ProfileFailedMessage+"please try again", msg)
	auth.AssertNotCalled(t, "UpdateEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileSignOutLogsFailure(t *testing.T) {
	auth := new(mocks.MockAuthService)
	svc := service.NewProfileService(auth, new(mocks.MockRecipeService), zap.NewNop())

	auth.On("SignOut", mock.Anything, "client-1").Return(errors.New("redis down")).Once()
	assert.Empty(t, svc.SignOut(context.Background(), "client-1"))

	auth.On("SignOut", mock.Anything, "client-2").Return(nil).Once()
	assert.Equal(t, service.SignedOutMessage, svc.SignOut(context.Background(), "client-2"))
}

func TestProfileWatch(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	hub := service.NewAuthHub(nil, zap.NewNop())
	auth := service.NewAuthService(db, store.NewMemorySessionStore(time.Hour), hub, "test-secret", time.Hour, zap.NewNop())
	recipeStore := store.NewGormRecipeStore(db)
	recipes := service.NewRecipeService(recipeStore, store.NewMemoryObjectStore("http://localhost"), zap.NewNop())
	profiles := service.NewProfileService(auth, recipes, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	// a recipe with no owner never shows up on a profile
	require.NoError(t, recipeStore.Create(ctx, &model.Recipe{Title: "Orxata", Type: model.FoodBeverage, Diet: model.DietVegan}))

	views := make(chan service.ProfileView)
	done := make(chan error)
	go func() {
		done <- profiles.Watch(ctx, "client-1", func(v service.ProfileView) error {
			views <- v
			return nil
		})
	}()

	assert.False(t, (<-views).SignedIn)

	_, user, err := auth.Register(ctx, "client-1", service.RegisterInput{
		FirstName: "Anna", LastName: "Puig", Email: "anna@example.com", Password: "pw", ConfirmPassword: "pw",
	})
	require.NoError(t, err)
	v := <-views
	assert.True(t, v.SignedIn)
	assert.Equal(t, "Anna Puig", v.Name)
	assert.Empty(t, v.Recipes)

	sess := &model.Session{ClientID: "client-1", User: user}
	_, err = recipes.Submit(ctx, sess, tortilla())
	require.NoError(t, err)
	require.NoError(t, auth.UpdateDisplayName(ctx, sess, "Anna P."))
	v = <-views
	assert.Equal(t, "Anna P.", v.Name)
	require.Len(t, v.Recipes, 1)
	assert.Equal(t, "Tortilla", v.Recipes[0].Title)

	require.NoError(t, auth.SignOut(ctx, "client-1"))
	v = <-views
	assert.False(t, v.SignedIn)
	assert.Equal(t, "Anna P.", v.Name)
	assert.Equal(t, "anna@example.com", v.Email)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 0, hub.Subscribers("client-1"))
}
