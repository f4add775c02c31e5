package redisad

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// LocalStore keeps each client's local-storage items in one hash, "ls:<client>".
type LocalStore struct{ c *redis.Client }

func NewLocalStore(c *redis.Client) *LocalStore { return &LocalStore{c: c} }

func hashKey(client string) string { return "ls:" + client }

func (s *LocalStore) GetItem(ctx context.Context, client, key string) (string, bool, error) {
	v, err := s.c.HGet(ctx, hashKey(client), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *LocalStore) SetItem(ctx context.Context, client, key, value string) error {
	return s.c.HSet(ctx, hashKey(client), key, value).Err()
}

func (s *LocalStore) RemoveItem(ctx context.Context, client, key string) error {
	return s.c.HDel(ctx, hashKey(client), key).Err()
}
