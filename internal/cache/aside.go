package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern. On a hit the cached JSON is
// unmarshaled into dest and the loader is skipped. On a miss the loader runs
// and, if it populated dest without error, the value is stored under key with
// the given TTL. A nil or unreachable Redis client degrades to calling the
// loader directly.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, loader func() error) error {
	if client == nil {
		return loader()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			return nil
		}
		// Unreadable entry: drop it and fall through to the loader.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) && err != nil {
		// Redis unavailable mid-flight; serve from the source of truth.
		return loader()
	}

	if err := loader(); err != nil {
		return err
	}

	if encoded, marshalErr := json.Marshal(dest); marshalErr == nil {
		client.Set(ctx, key, encoded, ttl)
	}
	return nil
}
