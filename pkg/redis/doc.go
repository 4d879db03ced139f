// Package redis opens the Redis client behind the shared page candidate
// cache.
//
//	client, err := redis.Open(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
//	if err != nil {
//	    return err
//	}
//	app := reek.New(
//	    reek.WithHealthChecks(reek.Checks{"redis": redis.Healthcheck(client)}),
//	    reek.WithShutdownHook(redis.Shutdown(client)),
//	)
//
// Open pings the server and retries with a linear backoff so that a
// process started alongside Redis waits for it. Config carries `env` tags
// and can be filled by github.com/caarlos0/env.
package redis
