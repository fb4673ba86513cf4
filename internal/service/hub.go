package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/internal/model"
)

const (
	authChannelPrefix = "auth_state:"
	subscriberBuffer  = 8
)

type subscriber struct {
	ch chan model.AuthState
}

// AuthHub fans authentication state changes out to the subscribers of each
// client session. With a Redis client, changes travel through Redis pub/sub
// so every API instance sees them; Run must then be running.
type AuthHub struct {
	mu     sync.Mutex
	subs   map[string]map[*subscriber]struct{}
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthHub creates a hub. rdb may be nil for in-process delivery.
func NewAuthHub(rdb *redis.Client, logger *zap.Logger) *AuthHub {
	return &AuthHub{
		subs:   make(map[string]map[*subscriber]struct{}),
		rdb:    rdb,
		logger: logger.Named("auth_hub"),
	}
}

// Subscribe registers a listener for clientID. The channel first yields
// initial and is closed by the returned unsubscribe func, which is safe to
// call more than once. A slow listener loses its oldest pending states.
func (h *AuthHub) Subscribe(clientID string, initial model.AuthState) (<-chan model.AuthState, func()) {
	sub := &subscriber{ch: make(chan model.AuthState, subscriberBuffer)}
	sub.ch <- initial

	h.mu.Lock()
	if h.subs[clientID] == nil {
		h.subs[clientID] = make(map[*subscriber]struct{})
	}
	h.subs[clientID][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[clientID], sub)
			if len(h.subs[clientID]) == 0 {
				delete(h.subs, clientID)
			}
			close(sub.ch)
		})
	}
}

// Subscribers returns the number of listeners registered for clientID.
func (h *AuthHub) Subscribers(clientID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[clientID])
}

// Publish announces a new state for clientID.
func (h *AuthHub) Publish(ctx context.Context, clientID string, state model.AuthState) error {
	if h.rdb == nil {
		h.deliver(clientID, state)
		return nil
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode auth state: %w", err)
	}
	if err := h.rdb.Publish(ctx, authChannelPrefix+clientID, payload).Err(); err != nil {
		return fmt.Errorf("publish auth state: %w", err)
	}
	return nil
}

// Run relays states published through Redis to local subscribers until ctx
// is cancelled. Without Redis it returns immediately.
func (h *AuthHub) Run(ctx context.Context) error {
	if h.rdb == nil {
		return nil
	}

	ps := h.rdb.PSubscribe(ctx, authChannelPrefix+"*")
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe auth states: %w", err)
	}
	h.logger.Info("relaying auth states from redis")

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var state model.AuthState
			if err := json.Unmarshal([]byte(msg.Payload), &state); err != nil {
				h.logger.Warn("dropping malformed auth state", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			h.deliver(strings.TrimPrefix(msg.Channel, authChannelPrefix), state)
		}
	}
}

func (h *AuthHub) deliver(clientID string, state model.AuthState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[clientID] {
		select {
		case sub.ch <- state:
			continue
		default:
		}
		// full: drop the oldest pending state
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- state:
		default:
		}
	}
}
