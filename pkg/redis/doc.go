// Package redis connects to Redis with go-redis and exposes a readiness
// healthcheck.
//
// Redis is optional for the service: when REDIS_URL is empty Enabled reports
// false and callers fall back to in-process stores.
//
//	cfg := config.MustLoad[redis.Config]()
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		...
//	}
package redis
