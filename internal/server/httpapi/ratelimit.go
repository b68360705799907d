package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mstore "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/dmitrijs2005/portfolio/internal/logging"
)

const rateLimitPrefix = "portfolio:ratelimit"

// NewLimiterStore returns a Redis-backed store when addr is set, so limits
// hold across replicas, and a process-local store otherwise. The returned
// close function releases the Redis client.
func NewLimiterStore(ctx context.Context, addr string) (limiter.Store, func() error, error) {
	if addr == "" {
		return mstore.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		}), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: rateLimitPrefix})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis limiter store: %w", err)
	}
	return store, client.Close, nil
}

// RateLimit throttles requests per client IP. A nil *RateLimit lets every
// request through.
type RateLimit struct {
	name    string
	limiter *limiter.Limiter
	log     logging.Logger
	metrics *Metrics
}

func NewRateLimit(name string, store limiter.Store, limit int64, period time.Duration, log logging.Logger, m *Metrics) *RateLimit {
	return &RateLimit{
		name:    name,
		limiter: limiter.New(store, limiter.Rate{Limit: limit, Period: period}),
		log:     log,
		metrics: m,
	}
}

func (l *RateLimit) Middleware(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := l.limiter.Get(r.Context(), l.name+":"+clientIP(r))
		if err != nil {
			// store outage: fail open
			l.log.Warn(r.Context(), "rate limiter unavailable", "limit", l.name, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
		h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(res.Reset, 10))

		if res.Reached {
			if l.metrics != nil {
				l.metrics.rateLimited.WithLabelValues(l.name).Inc()
			}
			fail(w, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the remote host of r. Behind a proxy, middleware.RealIP has
// already replaced RemoteAddr with the forwarded address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
