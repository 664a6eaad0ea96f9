// middleware/ratelimit.go
package middleware

import (
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Token bucket rate limiter implementation
type TokenBucket struct {
	tokens         float64
	maxTokens      float64
	refillRate     float64 // tokens per second
	lastRefillTime time.Time
	mu             sync.Mutex
}

func NewTokenBucket(maxTokens, refillRate float64) *TokenBucket {
	return &TokenBucket{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillRate:     refillRate,
		lastRefillTime: time.Now(),
	}
}

func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefillTime).Seconds()
	tb.tokens += elapsed * tb.refillRate
	if tb.tokens > tb.maxTokens {
		tb.tokens = tb.maxTokens
	}
	tb.lastRefillTime = now

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// Rate limiter storage
type RateLimiter struct {
	buckets map[string]*TokenBucket
	mu      sync.RWMutex

	// Configuration
	maxRequests   int
	windowSeconds int
}

var (
	generalLimiter *RateLimiter
	pinLimiter     *RateLimiter
)

func init() {
	// Initialize rate limiters from environment
	generalMaxReq := getEnvInt("RATE_LIMIT_MAX_REQUESTS", 300)
	generalWindow := getEnvInt("RATE_LIMIT_WINDOW_MS", 60000) / 1000 // 1 min default
	if generalWindow <= 0 {
		generalWindow = 60 // guard
	}

	// PIN attempts are limited hard to keep the parent gate brute-force
	// resistant.
	pinMaxReq := getEnvInt("PIN_RATE_LIMIT_MAX", 5)
	pinWindow := getEnvInt("PIN_RATE_LIMIT_WINDOW_MS", 300000) / 1000 // 5 min default
	if pinWindow <= 0 {
		pinWindow = 300
	}

	generalLimiter = NewRateLimiter(generalMaxReq, generalWindow)
	pinLimiter = NewRateLimiter(pinMaxReq, pinWindow)

	// Cleanup old buckets every 10 minutes
	go startCleanupRoutine()
}

func NewRateLimiter(maxRequests, windowSeconds int) *RateLimiter {
	return &RateLimiter{
		buckets:       make(map[string]*TokenBucket),
		maxRequests:   maxRequests,
		windowSeconds: windowSeconds,
	}
}

func (rl *RateLimiter) getBucket(key string) *TokenBucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket, exists := rl.buckets[key]
	if !exists {
		refillRate := float64(rl.maxRequests) / float64(rl.windowSeconds) // tokens/sec
		bucket = NewTokenBucket(float64(rl.maxRequests), refillRate)
		rl.buckets[key] = bucket
	}
	return bucket
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.getBucket(key).Allow()
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, bucket := range rl.buckets {
		bucket.mu.Lock()
		idle := time.Since(bucket.lastRefillTime)
		bucket.mu.Unlock()
		if idle > time.Duration(rl.windowSeconds)*2*time.Second {
			delete(rl.buckets, key)
		}
	}
}

func startCleanupRoutine() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		generalLimiter.cleanup()
		pinLimiter.cleanup()
	}
}

// clientIP extracts the client address, honoring X-Forwarded-For from a
// reverse proxy.
func clientIP(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	ip, _, err := net.SplitHostPort(c.Context().RemoteAddr().String())
	if err != nil {
		return c.IP()
	}
	return ip
}

// RateLimitMiddleware applies the general per-IP limit to all routes.
func RateLimitMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !generalLimiter.Allow(clientIP(c)) {
			log.Printf("Rate limit exceeded for %s on %s", clientIP(c), c.Path())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests, please slow down",
			})
		}
		return c.Next()
	}
}

// PinRateLimitMiddleware applies the strict limit to parent PIN attempts.
func PinRateLimitMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !pinLimiter.Allow(clientIP(c)) {
			log.Printf("PIN rate limit exceeded for %s", clientIP(c))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many PIN attempts, please wait before retrying",
			})
		}
		return c.Next()
	}
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
