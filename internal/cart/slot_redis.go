package cart

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlot keeps each cart blob in a plain string key. TTL zero means the
// cart never expires, matching browser local storage.
type RedisSlot struct {
	client *redis.Client
	TTL    time.Duration
}

// NewRedisSlot accepts either a redis:// URL or a bare host:port.
func NewRedisSlot(addr string) *RedisSlot {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}
	}
	return NewRedisSlotFromClient(redis.NewClient(opts))
}

func NewRedisSlotFromClient(c *redis.Client) *RedisSlot {
	return &RedisSlot{client: c}
}

func (s *RedisSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *RedisSlot) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, s.TTL).Err()
}

func (s *RedisSlot) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, slotPingTimeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

func (s *RedisSlot) Close() error {
	return s.client.Close()
}
