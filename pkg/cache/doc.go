// Package cache provides the TTL caches used in front of page lookups.
//
// [Memory] is a bounded in-process LRU cache; [Redis] shares entries
// between processes. Both implement [Cache], so the page store decorator
// and the resolver's route table cache take either:
//
//	local := cache.NewMemory[[]pages.Page](
//	    cache.WithMaxEntries(10_000),
//	    cache.WithDefaultTTL(5*time.Minute),
//	)
//
//	shared := cache.NewRedis[[]pages.Page](client, nil,
//	    cache.WithPrefix("reek:candidates"),
//	)
//
// A zero TTL passed to Set means the cache default, a negative TTL means
// the entry never expires.
//
// [GetOrSet] loads a missing value once even when many goroutines miss the
// same key at the same time:
//
//	v, err := cache.GetOrSet(ctx, c, key, func(ctx context.Context) ([]pages.Page, time.Duration, error) {
//	    p, err := store.Candidates(ctx, paths)
//	    return p, 0, err
//	})
package cache
