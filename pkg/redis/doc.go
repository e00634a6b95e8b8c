// Package redis connects to Redis and provides the lock that keeps two
// digest runs for the same kind and day from dispatching concurrently.
//
// Open validates the URL (redis:// or rediss://) and pings with retries
// before returning a client. Config carries the REDIS_* pool settings:
//
//	client, err := redis.Open(ctx, cfg.RedisURL, cfg.Redis.Options()...)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Lock takes a lease with SET NX PX under a random owner token. Release runs
// a compare-and-delete script, so an owner whose lease expired cannot remove
// a lock that someone else has since taken:
//
//	lock := redis.NewLock(client, "digest:letters:2024-07-14", 10*time.Minute)
//	ok, err := lock.Acquire(ctx)
//	if err != nil || !ok {
//		return err
//	}
//	defer lock.Release(context.WithoutCancel(ctx))
//
// Healthcheck and Shutdown return closures for the serve mode health
// endpoint and shutdown hooks.
package redis
