package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/internal/model"
)

func signedIn(name string) model.AuthState {
	return model.StateFor(&model.User{ID: uuid.New(), Email: name + "@example.com", DisplayName: name})
}

func TestAuthHubDeliversToClient(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	hub := NewAuthHub(nil, zap.NewNop())
	ctx := context.Background()

	ch, unsubscribe := hub.Subscribe("client-1", model.SignedOutState())
	other, unsubscribeOther := hub.Subscribe("client-2", model.SignedOutState())
	defer unsubscribeOther()

	assert.Equal(t, model.SignedOutState(), <-ch)
	assert.Equal(t, model.SignedOutState(), <-other)

	anna := signedIn("anna")
	require.NoError(t, hub.Publish(ctx, "client-1", anna))
	assert.Equal(t, anna, <-ch)
	assert.Empty(t, other)

	unsubscribe()
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, hub.Subscribers("client-1"))

	// publishing to a client without listeners is fine
	assert.NoError(t, hub.Publish(ctx, "client-1", model.SignedOutState()))
}

func TestAuthHubUnsubscribeTwice(t *testing.T) {
	hub := NewAuthHub(nil, zap.NewNop())
	_, unsubscribe := hub.Subscribe("client-1", model.SignedOutState())
	unsubscribe()
	assert.NotPanics(t, unsubscribe)
}

func TestAuthHubSlowSubscriberKeepsNewest(t *testing.T) {
	hub := NewAuthHub(nil, zap.NewNop())
	ch, unsubscribe := hub.Subscribe("client-1", model.SignedOutState())
	defer unsubscribe()

	var last model.AuthState
	for i := 0; i < subscriberBuffer*2; i++ {
		last = signedIn("user")
		require.NoError(t, hub.Publish(context.Background(), "client-1", last))
	}

	require.Len(t, ch, subscriberBuffer)
	var got model.AuthState
	for len(ch) > 0 {
		got = <-ch
	}
	assert.Equal(t, last, got)
}

func TestAuthHubRunWithoutRedis(t *testing.T) {
	hub := NewAuthHub(nil, zap.NewNop())
	assert.NoError(t, hub.Run(context.Background()))
}
