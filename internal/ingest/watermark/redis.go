package watermark

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"roster/pkg/platform/sentinel"
)

// Marks are stored as Unix microseconds so Lua's float arithmetic compares
// them exactly. The script only ever raises a mark.
var commitScript = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '')
if cur and cur >= tonumber(ARGV[1]) then
  return 0
end
if tonumber(ARGV[2]) > 0 then
  redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
else
  redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

// RedisStore shares watermarks across consumer instances.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore builds a store whose marks expire after ttl; zero keeps them
// forever.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) IsFresh(ctx context.Context, key Key, modified time.Time) (bool, error) {
	raw, err := s.client.Get(ctx, key.String()).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: read watermark %s: %v", sentinel.ErrUnavailable, key, err)
	}
	cur, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// An unreadable mark is overwritten by the next commit.
		return true, nil
	}
	return modified.UnixMicro() > cur, nil
}

func (s *RedisStore) Commit(ctx context.Context, key Key, modified time.Time) error {
	err := commitScript.Run(ctx, s.client,
		[]string{key.String()},
		modified.UnixMicro(),
		s.ttl.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("%w: commit watermark %s: %v", sentinel.ErrUnavailable, key, err)
	}
	return nil
}
