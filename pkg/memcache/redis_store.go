package mem

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	otpKeyPrefix     = "eatwise:otp:"
	failureKeySuffix = ":failures"
)

// failScript bumps the failure counter of a live code, giving the counter the
// code's remaining TTL, and deletes both keys once the limit is reached.
// It returns the guesses left.
var failScript = redis.NewScript(`
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
	redis.call("DEL", KEYS[1], KEYS[2])
	return 0
end
local n = redis.call("INCR", KEYS[2])
redis.call("PEXPIRE", KEYS[2], ttl)
local limit = tonumber(ARGV[1])
if n >= limit then
	redis.call("DEL", KEYS[1], KEYS[2])
	return 0
end
return limit - n
`)

// RedisOTPStore shares codes between API replicas.
type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisOTPStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, otpKeyPrefix+key, value, ttl)
		pipe.Del(ctx, otpKeyPrefix+key+failureKeySuffix)
		return nil
	})
	return err
}

func (s *RedisOTPStore) Consume(ctx context.Context, key string) (string, error) {
	var get *redis.StringCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.GetDel(ctx, otpKeyPrefix+key)
		pipe.Del(ctx, otpKeyPrefix+key+failureKeySuffix)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	v, err := get.Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

func (s *RedisOTPStore) Peek(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, otpKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisOTPStore) Fail(ctx context.Context, key string, limit int) (int, error) {
	keys := []string{otpKeyPrefix + key, otpKeyPrefix + key + failureKeySuffix}
	return failScript.Run(ctx, s.client, keys, limit).Int()
}
