package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLockNotAcquired is returned when another request already holds the lock.
var ErrLockNotAcquired = errors.New("slot lock not acquired")

// RedisSlotLocker guards booking critical sections with a per-key Redis lock.
type RedisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotLocker(client *redis.Client, ttl time.Duration) *RedisSlotLocker {
	return &RedisSlotLocker{client: client, ttl: ttl}
}

// WithSlotLock runs fn while holding the lock for key. The lock expires after
// the configured TTL even if the holder dies, and fn's context is bounded by it.
func (l *RedisSlotLocker) WithSlotLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lockKey := SlotLockPrefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire slot lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		// Released with a fresh context so a cancelled request still frees the key.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = l.release(releaseCtx, lockKey, token)
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *RedisSlotLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release slot lock: %w", err)
	}
	return nil
}
