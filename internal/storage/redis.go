package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/prasetyodt/railbooking/config"
)

// RedisStore keeps the namespace blob under a prefixed key with no TTL.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

func NewRedisStore(cfg config.RedisConfig, namespace string) *RedisStore {
	return &RedisStore{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		namespace: namespace,
	}
}

// NewRedisStoreWithClient shares an existing client between namespaces.
func NewRedisStoreWithClient(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{client: client, namespace: namespace}
}

func (s *RedisStore) key() string {
	return "state:" + s.namespace
}

func (s *RedisStore) Save(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", s.namespace, err)
	}
	return s.client.Set(ctx, s.key(), data, 0).Err()
}

func (s *RedisStore) Load(ctx context.Context, v any) error {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("storage: unmarshal %s: %w", s.namespace, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key()).Err()
}

var _ Store = (*RedisStore)(nil)
