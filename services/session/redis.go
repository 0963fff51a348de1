package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"rapstation/models"
)

const (
	sessionPrefix = "booking:session:"
	lockPrefix    = "booking:checkout:"
)

// RedisSessionStore keeps sessions as JSON with a sliding TTL.
type RedisSessionStore struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl, lockTTL time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl, lockTTL: lockTTL}
}

func (s *RedisSessionStore) Get(ctx context.Context, code string) (*models.BookingSession, error) {
	data, err := s.client.Get(ctx, sessionPrefix+code).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess models.BookingSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *models.BookingSession) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+sess.Code, b, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, code string) error {
	return s.client.Del(ctx, sessionPrefix+code).Err()
}

func (s *RedisSessionStore) Lock(ctx context.Context, code string) (bool, error) {
	return s.client.SetNX(ctx, lockPrefix+code, time.Now().UTC().Format(time.RFC3339Nano), s.lockTTL).Result()
}

func (s *RedisSessionStore) Unlock(ctx context.Context, code string) error {
	return s.client.Del(ctx, lockPrefix+code).Err()
}
