// Package cache is a thin JSON cache over Redis.
//
// All helpers are safe to call when Redis is unreachable: Get reports a
// miss, Set and Del become no-ops. The application must keep working with
// the cache disabled.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/themirzaalibaig/server-ecommerce/config"
)

var RDB *redis.Client
var Ctx = context.Background()

// Connect initialises the Redis client and verifies the connection with a
// ping. On failure the client is cleared so every helper degrades to a no-op.
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		RDB = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Close releases the client connection.
func Close() error {
	if RDB == nil {
		return nil
	}
	err := RDB.Close()
	RDB = nil
	return err
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}

	return true
}

// Set stores value in Redis under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Del removes one or more keys from Redis.
func Del(keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}

// ── Versioned namespaces ─────────────────────────────────────────────────────
//
// List endpoints cache under arbitrary filter signatures, so individual keys
// cannot be enumerated for deletion. Instead every namespace carries a
// version counter baked into its keys; bumping the counter orphans all old
// entries and the TTL reclaims them.

// Key builds a namespaced cache key that embeds the namespace version.
func Key(namespace, signature string) string {
	return fmt.Sprintf("%s:v%d:%s", namespace, version(namespace), signature)
}

// Invalidate bumps the namespace version, orphaning every key built before.
func Invalidate(namespace string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Incr(Ctx, namespace+":version").Err()
}

func version(namespace string) int64 {
	if RDB == nil {
		return 0
	}
	n, err := RDB.Get(Ctx, namespace+":version").Int64()
	if err != nil {
		return 0
	}
	return n
}
