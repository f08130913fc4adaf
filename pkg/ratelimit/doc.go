// Package ratelimit throttles HTTP requests with a fixed-window counter.
//
// A FixedWindow limiter counts requests per key in a Store. MemoryStore keeps
// counters in process; RedisStore shares them across instances. Middleware
// derives the key from the request with a KeyFunc and answers 429 when the
// limit is exceeded. Store failures let the request through.
//
//	limiter, _ := ratelimit.NewFixedWindow(store, ratelimit.Config{Limit: 10, Window: 15 * time.Minute})
//	r.With(ratelimit.Middleware(limiter, ratelimit.Composite(ratelimit.ByIP, ratelimit.ByPath))).
//		Post("/login", login)
package ratelimit
