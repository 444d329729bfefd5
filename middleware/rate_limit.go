package middleware

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CounterStore increments a fixed-window counter and reports the count
// and when the window resets.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// memoryStore keeps per-process window buckets. Counters are not
// coordinated across instances; use the redis store for that.
type memoryStore struct {
	mu      sync.Mutex
	buckets map[string]*windowBucket
}

type windowBucket struct {
	count   int64
	resetAt time.Time
}

func NewMemoryCounterStore() CounterStore {
	return &memoryStore{buckets: make(map[string]*windowBucket)}
}

func (s *memoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	bucket, ok := s.buckets[key]
	if !ok || now.After(bucket.resetAt) {
		bucket = &windowBucket{resetAt: now.Add(window)}
		s.buckets[key] = bucket
	}
	bucket.count++

	// Drop stale buckets opportunistically so the map stays bounded
	if len(s.buckets) > 10000 {
		for k, b := range s.buckets {
			if now.After(b.resetAt) {
				delete(s.buckets, k)
			}
		}
	}

	return bucket.count, bucket.resetAt, nil
}

// redisStore shares counters across instances with an atomic
// increment + expiry, set only when the window opens.
type redisStore struct {
	client *redis.Client
}

func NewRedisCounterStore(redisURL string) (CounterStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisStore{client: client}, nil
}

func (s *redisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.TTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	return incr.Val(), time.Now().Add(ttl.Val()), nil
}

// RateLimiterConfig describes one fixed-window limiter instance.
type RateLimiterConfig struct {
	Scope   string // metric label: general, auth, search
	Window  time.Duration
	Max     int64
	Message string
	// ByIPOnly ignores the credential and always keys on the caller IP
	ByIPOnly bool
}

// RateLimiter enforces a fixed-window quota keyed by the caller's
// credential, or IP when no credential is present. Standard rate-limit
// headers are set; legacy X-RateLimit headers are not. A failing
// counter store fails open.
func RateLimiter(store CounterStore, cfg RateLimiterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !cfg.ByIPOnly {
			if apiKey := c.GetHeader(APIKeyHeader); apiKey != "" {
				key = apiKey
			}
		}
		key = "ratelimit:" + cfg.Scope + ":" + key

		count, resetAt, err := store.Incr(c.Request.Context(), key, cfg.Window)
		if err != nil {
			log.Printf("Rate limit counter error: %v", err)
			c.Next()
			return
		}

		remaining := cfg.Max - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("RateLimit-Limit", strconv.FormatInt(cfg.Max, 10))
		c.Header("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("RateLimit-Reset", strconv.FormatInt(int64(time.Until(resetAt).Seconds()), 10))

		if count > cfg.Max {
			utils.TrackRateLimitRejection(cfg.Scope)
			utils.TooManyRequests(c, cfg.Message)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GeneralLimiter covers every /api route.
func GeneralLimiter(store CounterStore, window time.Duration, max int) gin.HandlerFunc {
	return RateLimiter(store, RateLimiterConfig{
		Scope:   "general",
		Window:  window,
		Max:     int64(max),
		Message: "Too many requests, please try again later",
	})
}

// AuthLimiter guards registration, keyed strictly by IP.
func AuthLimiter(store CounterStore) gin.HandlerFunc {
	return RateLimiter(store, RateLimiterConfig{
		Scope:    "auth",
		Window:   15 * time.Minute,
		Max:      10,
		Message:  "Too many authentication attempts, please try again later",
		ByIPOnly: true,
	})
}

// SearchLimiter guards the text-search endpoint.
func SearchLimiter(store CounterStore) gin.HandlerFunc {
	return RateLimiter(store, RateLimiterConfig{
		Scope:   "search",
		Window:  time.Minute,
		Max:     30,
		Message: "Too many search requests, please try again later",
	})
}
