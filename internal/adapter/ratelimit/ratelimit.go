// Package ratelimit provides the token bucket limiter shared by the HTTP and
// gRPC transports. Buckets live in Redis when a client is configured and in
// process memory otherwise.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds configuration for the rate limiter.
type Config struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// New returns the limiter for cfg. It returns nil when limiting is disabled.
// A nil client selects the in-process limiter.
func New(cfg Config, client *redis.Client, log *zap.Logger) Limiter {
	if !cfg.Enabled {
		return nil
	}
	local := NewLocal(cfg.RequestsPerSecond, cfg.Burst, 3*time.Minute)
	if client == nil {
		return local
	}
	return &Fallback{
		Primary:   NewRedisTokenBucket(client, cfg.RequestsPerSecond, cfg.Burst),
		Secondary: local,
		log:       log,
	}
}

// Token Bucket algorithm implemented in Lua for atomicity.
// Data structure: {last_refill, tokens}
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
local last_refill = tonumber(bucket[1]) or now
local tokens = tonumber(bucket[2]) or capacity

local elapsed = math.max(0, now - last_refill)
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HMSET', key, 'last_refill', tostring(now), 'tokens', tostring(tokens))
redis.call('EXPIRE', key, 60)
return allowed
`)

// RedisTokenBucket keeps one bucket per key in a Redis hash.
type RedisTokenBucket struct {
	client *redis.Client
	rate   float64
	burst  int
	now    func() time.Time
}

// NewRedisTokenBucket creates a Redis-backed token bucket limiter.
func NewRedisTokenBucket(client *redis.Client, requestsPerSecond float64, burst int) *RedisTokenBucket {
	return &RedisTokenBucket{
		client: client,
		rate:   requestsPerSecond,
		burst:  burst,
		now:    time.Now,
	}
}

// Allow consumes one token from the bucket for key.
func (l *RedisTokenBucket) Allow(ctx context.Context, key string) (bool, error) {
	now := float64(l.now().UnixMilli()) / 1000
	allowed, err := tokenBucket.Run(ctx, l.client, []string{"ratelimit:tb:" + key}, l.rate, l.burst, now).Int64()
	if err != nil {
		return false, fmt.Errorf("token bucket: %w", err)
	}
	return allowed == 1, nil
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Local provides per-key rate limiting in process memory.
type Local struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
}

// NewLocal creates an in-process limiter. Keys idle for longer than ttl are
// forgotten.
func NewLocal(requestsPerSecond float64, burst int, ttl time.Duration) *Local {
	return &Local{
		visitors:  make(map[string]*visitor),
		rate:      rate.Limit(requestsPerSecond),
		burst:     burst,
		ttl:       ttl,
		lastSweep: time.Now(),
	}
}

// Allow checks if a request with the given key is allowed.
func (l *Local) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) > l.ttl {
		l.sweep(now)
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

// sweep removes keys that have not been seen within the ttl. Callers hold mu.
func (l *Local) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// Len reports the number of tracked keys.
func (l *Local) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Fallback consults Primary and answers from Secondary when Primary fails.
type Fallback struct {
	Primary   Limiter
	Secondary Limiter
	log       *zap.Logger
}

// Allow implements Limiter.
func (f *Fallback) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := f.Primary.Allow(ctx, key)
	if err == nil {
		return ok, nil
	}
	if f.log != nil {
		f.log.Warn("rate limiter redis error, using local bucket", zap.String("key", key), zap.Error(err))
	}
	return f.Secondary.Allow(ctx, key)
}
