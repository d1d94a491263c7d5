package visitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// visitScript performs the check-and-update atomically on the redis
// side, so concurrent observations of one identity across service
// instances cannot both be classified unique. Timestamps travel as unix
// milliseconds. Returns {unique, count, first, last}.
var visitScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local ttl = tonumber(ARGV[3])

local data = redis.call('HMGET', key, 'first', 'last', 'count')
if not data[1] then
  redis.call('HSET', key, 'first', now, 'last', now, 'count', 1)
  redis.call('PEXPIRE', key, ttl)
  return {1, 1, now, now}
end

local first = tonumber(data[1])
local last = tonumber(data[2])
local count = tonumber(data[3])

if now - last > window then
  count = count + 1
  redis.call('HSET', key, 'last', now, 'count', count)
  redis.call('PEXPIRE', key, ttl)
  return {1, count, first, now}
end

redis.call('PEXPIRE', key, ttl)
return {0, count, first, last}
`)

// RedisStore keeps visit records in redis so dedup stays correct when
// the service runs behind more than one instance. Records carry a TTL
// refreshed on every observation; redis owns the expiry, no sweeping
// needed on our side.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	retention time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the default "visit:" key prefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// WithRetention sets the record TTL. When unset, records live for four
// windows, matching the memory store's retention default.
func WithRetention(d time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if d > 0 {
			s.retention = d
		}
	}
}

// NewRedisStore creates a redis-backed store using the provided client.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: "visit:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Visit implements Store via the Lua check-and-update script.
func (s *RedisStore) Visit(ctx context.Context, identity string, now time.Time, window time.Duration) (Classification, error) {
	retention := s.retention
	if retention <= 0 {
		retention = 4 * window
	}

	res, err := visitScript.Run(ctx, s.client,
		[]string{s.keyPrefix + identity},
		now.UnixMilli(), window.Milliseconds(), retention.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return Classification{}, errors.Join(ErrStoreUnavailable, err)
	}
	if len(res) != 4 {
		return Classification{}, fmt.Errorf("%w: unexpected script reply of length %d", ErrStoreUnavailable, len(res))
	}

	return Classification{
		IsUnique:   res[0] == 1,
		VisitCount: res[1],
		FirstVisit: time.UnixMilli(res[2]),
		LastVisit:  time.UnixMilli(res[3]),
	}, nil
}
