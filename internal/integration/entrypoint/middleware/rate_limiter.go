// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// rateLimitStore counts attempts per key within a rolling window.
type rateLimitStore interface {
	// Increment bumps the attempt counter for key and returns the new count.
	// The first increment in a window starts the window.
	Increment(ctx context.Context, key string, window time.Duration) (int, error)

	// Reset clears all counters.
	Reset(ctx context.Context) error
}

// RateLimiter provides IP-based rate limiting. Counters live in Redis when a
// client is supplied, so limits hold across multiple API instances; otherwise
// a process-local store is used.
type RateLimiter struct {
	store          rateLimitStore
	fallback       rateLimitStore
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates a rate limiter backed by process-local memory.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates an in-memory rate limiter with custom settings.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		store:          newMemoryStore(),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// NewRedisRateLimiter creates a rate limiter backed by Redis. When Redis is
// unreachable the limiter falls back to a process-local store rather than
// failing open.
func NewRedisRateLimiter(client *redis.Client, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		store:          &redisStore{client: client},
		fallback:       newMemoryStore(),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting in E2E mode or test environment
		if os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		if !rl.allow(c.Request.Context(), clientIP) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow checks if a request from the given key should be allowed.
func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	count, err := rl.store.Increment(ctx, key, rl.windowDuration)
	if err != nil {
		if rl.fallback == nil {
			// No fallback configured; do not fail open.
			slog.Error("Rate limit store unavailable", "error", err)
			return false
		}
		slog.Warn("Rate limit store unavailable, using local fallback", "error", err)
		count, err = rl.fallback.Increment(ctx, key, rl.windowDuration)
		if err != nil {
			return false
		}
	}
	return count <= rl.maxAttempts
}

// Reset clears the rate limiter state (useful for testing).
func (rl *RateLimiter) Reset() {
	_ = rl.store.Reset(context.Background())
	if rl.fallback != nil {
		_ = rl.fallback.Reset(context.Background())
	}
}

// memoryStore is the process-local counter store.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	attempts  int
	resetTime time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		entries: make(map[string]*memoryEntry),
	}
}

// Increment bumps the attempt counter for key, resetting expired windows.
func (s *memoryStore) Increment(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		s.entries[key] = &memoryEntry{
			attempts:  1,
			resetTime: now.Add(window),
		}
		return 1, nil
	}

	entry.attempts++
	return entry.attempts, nil
}

// Reset clears all counters.
func (s *memoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*memoryEntry)
	return nil
}

// Cleanup removes expired entries (can be called periodically to free memory).
func (s *memoryStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}

// redisStore counts attempts in Redis so all API instances share one window.
type redisStore struct {
	client *redis.Client
}

const rateLimitKeyPrefix = "ratelimit:"

// Increment bumps the attempt counter for key. The expiry is set only when
// the key is created, so the window does not slide on repeat attempts.
func (s *redisStore) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	redisKey := rateLimitKeyPrefix + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return 0, err
		}
	}
	return int(count), nil
}

// Reset clears all rate limit counters.
func (s *redisStore) Reset(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, rateLimitKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
