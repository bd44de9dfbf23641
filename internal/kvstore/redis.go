package kvstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/daykeeper/internal/common"
)

// RedisStore maps the Store interface onto Redis string commands:
// GET/SET/DEL/KEYS/MGET. Values are stored without expiration.
type RedisStore struct {
	client *redis.Client
}

// RedisOptions holds connection settings for the Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// InitRedis connects to Redis and verifies the connection with PING.
func InitRedis(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.Timeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, common.NewStorageError("ping", "", err)
	}
	return NewRedisStore(client), nil
}

// Close releases the underlying client's connections.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, common.NewStorageError("get", key, err)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return common.NewStorageError("set", key, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return common.NewStorageError("remove", key, err)
	}
	return nil
}

func (s *RedisStore) GetAllKeys(ctx context.Context) ([]string, error) {
	keys, err := s.client.Keys(ctx, "*").Result()
	if err != nil {
		return nil, common.NewStorageError("keys", "", err)
	}
	return keys, nil
}

func (s *RedisStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, common.NewStorageError("getmany", "", err)
	}
	for i, v := range vals {
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok {
			result[keys[i]] = []byte(str)
		}
	}
	return result, nil
}
