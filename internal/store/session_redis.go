package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps session bindings in Redis with a TTL.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(clientID string) string {
	return "session:" + clientID
}

// Bind stores a new session mapping clientID -> userID.
func (s *RedisSessionStore) Bind(ctx context.Context, clientID, userID string) error {
	return s.rdb.Set(ctx, sessionKey(clientID), userID, s.ttl).Err()
}

// Lookup returns the userID for a session, or "" if not found / expired.
func (s *RedisSessionStore) Lookup(ctx context.Context, clientID string) (string, error) {
	val, err := s.rdb.Get(ctx, sessionKey(clientID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

// Unbind removes a session.
func (s *RedisSessionStore) Unbind(ctx context.Context, clientID string) error {
	return s.rdb.Del(ctx, sessionKey(clientID)).Err()
}
