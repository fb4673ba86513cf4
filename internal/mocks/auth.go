package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/sofregit/backend/internal/model"
	"github.com/pageza/sofregit/backend/internal/service"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, clientID string, in service.RegisterInput) (string, *model.User, error) {
	args := m.Called(ctx, clientID, in)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) SignIn(ctx context.Context, clientID, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, clientID, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) SignOut(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockAuthService) UpdateDisplayName(ctx context.Context, sess *model.Session, name string) error {
	args := m.Called(ctx, sess, name)
	return args.Error(0)
}

func (m *MockAuthService) UpdateEmail(ctx context.Context, sess *model.Session, email string) error {
	args := m.Called(ctx, sess, email)
	return args.Error(0)
}

func (m *MockAuthService) State(ctx context.Context, clientID string) (model.AuthState, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(model.AuthState), args.Error(1)
}

func (m *MockAuthService) Watch(ctx context.Context, clientID string) (<-chan model.AuthState, func(), error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(<-chan model.AuthState), args.Get(1).(func()), args.Error(2)
}

func (m *MockAuthService) ResolveToken(ctx context.Context, token string) (*model.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockAuthService) ResolveClient(ctx context.Context, clientID string) (*model.Session, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}
