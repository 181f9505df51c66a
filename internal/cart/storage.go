package cart

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage persists one visitor's serialized cart. Implementations are
// best-effort: Load reports ok=false for both "never saved" and any backend
// failure, which the cart treats as empty.
type Storage interface {
	Load() ([]byte, bool)
	Save(data []byte) error
}

// RedisStorage keeps one cart per visitor key in Redis with a TTL, so
// abandoned carts age out on their own.
type RedisStorage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStorage builds a Redis-backed cart store for a visitor key.
func NewRedisStorage(client *redis.Client, visitorKey string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, key: "cart:" + visitorKey, ttl: ttl}
}

// Load fetches the stored cart payload.
func (s *RedisStorage) Load() ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Save overwrites the stored cart payload and refreshes the TTL.
func (s *RedisStorage) Save(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.client.Set(ctx, s.key, data, s.ttl).Err()
}
