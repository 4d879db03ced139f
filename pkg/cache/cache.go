package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a key-value cache with per-entry TTL.
type Cache[V any] interface {
	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear drops every entry owned by the cache.
	Clear(ctx context.Context) error
	Close() error
}

// Marshaler converts values for byte-oriented backends.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// JSON is the default Marshaler.
type JSON[V any] struct{}

func (JSON[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (JSON[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

var loads singleflight.Group

// NoStore, returned as the TTL by a GetOrSet loader, hands the value to
// the callers without caching it.
const NoStore time.Duration = math.MinInt64

type loaded[V any] struct {
	val V
	ttl time.Duration
}

// GetOrSet returns the cached value for key or loads it with fn.
// Concurrent misses on the same cache and key share a single fn call.
// Values are only cached when fn succeeds; a failing Set is ignored.
// A caller whose shared load failed only because the leading caller's
// context ended loads again with its own context.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	load := func(ctx context.Context) (loaded[V], error) {
		v, ttl, err := fn(ctx)
		if err != nil {
			return loaded[V]{}, err
		}
		if ttl != NoStore {
			_ = c.Set(ctx, key, v, ttl)
		}
		return loaded[V]{val: v, ttl: ttl}, nil
	}

	// Keyed by cache instance too, so caches of different value types
	// never share a flight.
	flight := fmt.Sprintf("%p\x00%s", c, key)
	res, err, shared := loads.Do(flight, func() (any, error) { return load(ctx) })
	if err != nil && shared && ctx.Err() == nil &&
		(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		res, err = load(ctx)
	}
	if err != nil {
		var zero V
		return zero, err
	}

	return res.(loaded[V]).val, nil
}
