package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "ratelimit:"

var ErrUnexpectedRedisReply = errors.New("unexpected reply from redis rate limit script")

// Scores are unix milliseconds. Members get a unique prefix so concurrent
// requests within the same millisecond are all counted.
var recordScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local span = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local n = tonumber(ARGV[4])
local member = ARGV[5]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - span)
local count = redis.call('ZCARD', key)
local recorded = 0
if count + n <= limit then
	for i = 1, n do
		redis.call('ZADD', key, now, member .. ':' .. i)
	end
	count = count + n
	recorded = 1
end
if count > 0 then
	redis.call('PEXPIRE', key, span)
end

local oldest = 0
local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if first[2] then
	oldest = tonumber(first[2])
end
return {recorded, count, oldest}
`)

var countScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local span = tonumber(ARGV[2])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - span)
local count = redis.call('ZCARD', key)
local oldest = 0
local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if first[2] then
	oldest = tonumber(first[2])
end
return {0, count, oldest}
`)

// RedisStore keeps each key's window in a sorted set scored by request time.
// The set expires one window after its last write.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

type RedisStoreOption func(*RedisStore)

// WithKeyPrefix namespaces the sorted set keys. Defaults to "ratelimit:".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) RecordIfAllowed(ctx context.Context, key string, now time.Time, span time.Duration, limit, n int) (Usage, error) {
	reply, err := recordScript.Run(ctx, s.client, []string{s.prefix + key},
		now.UnixMilli(), span.Milliseconds(), limit, n, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return Usage{}, fmt.Errorf("record rate limit window: %w", err)
	}
	return usageFromReply(reply)
}

func (s *RedisStore) Count(ctx context.Context, key string, now time.Time, span time.Duration) (Usage, error) {
	reply, err := countScript.Run(ctx, s.client, []string{s.prefix + key},
		now.UnixMilli(), span.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return Usage{}, fmt.Errorf("count rate limit window: %w", err)
	}
	return usageFromReply(reply)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("delete rate limit window: %w", err)
	}
	return nil
}

func usageFromReply(reply []int64) (Usage, error) {
	if len(reply) != 3 {
		return Usage{}, ErrUnexpectedRedisReply
	}
	u := Usage{Recorded: reply[0] == 1, Count: reply[1]}
	if reply[2] > 0 {
		u.Oldest = time.UnixMilli(reply[2])
	}
	return u, nil
}
