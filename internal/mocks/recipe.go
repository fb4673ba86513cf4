package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/sofregit/backend/internal/form"
	"github.com/pageza/sofregit/backend/internal/model"
	"github.com/pageza/sofregit/backend/internal/service"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Submit(ctx context.Context, sess *model.Session, sub service.Submission) (*model.Recipe, error) {
	args := m.Called(ctx, sess, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) SubmitForm(ctx context.Context, sess *model.Session, sub service.Submission) (form.State, *model.Recipe, error) {
	args := m.Called(ctx, sess, sub)
	if args.Get(1) == nil {
		return args.Get(0).(form.State), nil, args.Error(2)
	}
	return args.Get(0).(form.State), args.Get(1).(*model.Recipe), args.Error(2)
}

func (m *MockRecipeService) FormState(clientID string) form.State {
	args := m.Called(clientID)
	return args.Get(0).(form.State)
}

func (m *MockRecipeService) ReleaseForms(clientID string) {
	m.Called(clientID)
}

func (m *MockRecipeService) ListNewestFirst(ctx context.Context) []model.Recipe {
	args := m.Called(ctx)
	return args.Get(0).([]model.Recipe)
}

func (m *MockRecipeService) ListByOwner(ctx context.Context, ownerID string) ([]model.Recipe, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}
