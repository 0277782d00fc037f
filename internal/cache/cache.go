package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// versionTTL bounds how long an invalidation generation is remembered.
const versionTTL = 24 * time.Hour

// setIfVersion stores ARGV[2] under KEYS[1] only while the generation in
// KEYS[2] still equals ARGV[1]. ARGV[3] is the TTL in milliseconds.
var setIfVersion = redis.NewScript(`
local current = redis.call("GET", KEYS[2]) or ""
if current ~= ARGV[1] then
  return 0
end
if tonumber(ARGV[3]) > 0 then
  redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
else
  redis.call("SET", KEYS[1], ARGV[2])
end
return 1
`)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client is a valid, always-missing cache.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Redis client. ttl applies to entries stored by Fetch.
func New(addr, password string, db int, ttl time.Duration) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts), ttl: ttl}
}

// WithTTL returns a client sharing the same connection pool whose entries
// expire after ttl.
func (c *Client) WithTTL(ttl time.Duration) *Client {
	if c == nil {
		return nil
	}
	return &Client{client: c.client, ttl: ttl}
}

// WishKey is the cache key of a wish with its owner and offers.
func WishKey(id uint) string {
	return fmt.Sprintf("wish:%d", id)
}

// UserKey is the cache key of a public user profile.
func UserKey(username string) string {
	return "user:" + username
}

func versionKey(key string) string {
	return key + ":gen"
}

// Ping reports whether redis is reachable. Unlike the other methods it
// surfaces the error, for startup diagnostics.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors alike behave as a miss
		return nil, nil
	}
	return res, nil
}

// GetJSON decodes a cached value into dst. It reports false on a miss or
// when the cached payload no longer decodes.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	data, _ := c.Get(ctx, key)
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// Invalidate drops keys and bumps their generation, so a reader that loaded
// before the write cannot store its result afterwards. Redis errors are ignored.
func (c *Client) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	pipe := c.client.TxPipeline()
	for _, key := range keys {
		pipe.Incr(ctx, versionKey(key))
		pipe.Expire(ctx, versionKey(key), versionTTL)
	}
	pipe.Del(ctx, keys...)
	_, _ = pipe.Exec(ctx)
}

// version returns the current generation of key. ok is false when redis is
// unavailable, in which case nothing should be stored.
func (c *Client) version(ctx context.Context, key string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	v, err := c.client.Get(ctx, versionKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", true
	}
	if err != nil {
		return "", false
	}
	return v, true
}

func (c *Client) storeIfVersion(ctx context.Context, key, version string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = setIfVersion.Run(ctx, c.client, []string{key, versionKey(key)}, version, payload, c.ttl.Milliseconds()).Err()
}

// Fetch returns the cached value of key or calls load and caches its result.
// The result is not stored when key was invalidated while load ran.
func Fetch[T any](ctx context.Context, c *Client, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	if c.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	version, ok := c.version(ctx, key)
	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if ok {
		c.storeIfVersion(ctx, key, version, value)
	}
	return value, nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
